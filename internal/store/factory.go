package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// NewDatabaseFromConfig creates a Database implementation based on the
// database config type and migrates it to the latest schema.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, deviceID string) (tracker.Database, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, deviceID+".db")
		return openMigrated(dbPath, deviceID)
	case "memory":
		return openMigrated(":memory:", deviceID)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

func openMigrated(path, deviceID string) (*SQLiteDatabase, error) {
	db, err := NewSQLiteDatabase(path, deviceID)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return db, nil
}
