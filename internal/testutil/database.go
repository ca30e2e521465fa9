package testutil

import (
	"testing"

	"github.com/vbagdi/Mood-Tracker-291/internal/store"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// NewTestDatabase creates a new in-memory SQLite database with all migrations
// applied. The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) tracker.Database {
	t.Helper()
	return NewTestSQLiteDatabase(t)
}

// NewTestSQLiteDatabase is NewTestDatabase with the concrete type exposed for
// tests that need store-level accessors.
func NewTestSQLiteDatabase(t *testing.T) *store.SQLiteDatabase {
	t.Helper()

	db, err := store.NewSQLiteDatabase(":memory:", "test-device")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
