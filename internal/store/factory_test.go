package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
)

func TestNewDatabaseFromConfig(t *testing.T) {
	t.Run("memory database", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "memory"}
		got, err := NewDatabaseFromConfig(cfg, "test-device-123")
		if err != nil {
			t.Fatalf("NewDatabaseFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		if got.DeviceID() != "test-device-123" {
			t.Errorf("DeviceID() = %q, want %q", got.DeviceID(), "test-device-123")
		}

		// Migrated and usable right away.
		if _, err := got.AllRecords(); err != nil {
			t.Errorf("AllRecords() on fresh database error = %v", err)
		}
	})

	t.Run("sqlite database", func(t *testing.T) {
		dataDir := t.TempDir()
		cfg := config.DatabaseConfig{Type: "sqlite", DataDir: dataDir}
		got, err := NewDatabaseFromConfig(cfg, "test-device-123")
		if err != nil {
			t.Fatalf("NewDatabaseFromConfig() unexpected error: %v", err)
		}
		defer got.Close()

		wantPath := filepath.Join(dataDir, "test-device-123.db")
		if _, err := os.Stat(wantPath); err != nil {
			t.Errorf("database file not created at %s: %v", wantPath, err)
		}
	})

	t.Run("sqlite creates missing data dir", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), "nested", "data")
		cfg := config.DatabaseConfig{Type: "sqlite", DataDir: dataDir}
		got, err := NewDatabaseFromConfig(cfg, "test-device-123")
		if err != nil {
			t.Fatalf("NewDatabaseFromConfig() unexpected error: %v", err)
		}
		got.Close()
	})

	t.Run("sqlite database without data_dir", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "sqlite"}
		got, err := NewDatabaseFromConfig(cfg, "test-device-123")
		if err == nil {
			got.Close()
			t.Fatal("NewDatabaseFromConfig() expected error for missing data_dir, got nil")
		}
	})

	t.Run("unknown database type", func(t *testing.T) {
		cfg := config.DatabaseConfig{Type: "unknown"}
		got, err := NewDatabaseFromConfig(cfg, "test-device-123")
		if err == nil {
			got.Close()
			t.Fatal("NewDatabaseFromConfig() expected error for unknown type, got nil")
		}
	})
}
