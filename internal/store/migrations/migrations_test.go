package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	err := MigrateUp(db)
	if err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	// Verify tables were created
	tables := []string{"daily_records", "pending_sleep", "settings", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	// Fresh database should need migration
	err := CheckDBMigrationStatus(db)
	if err == nil {
		t.Error("CheckDBMigrationStatus() expected error for fresh database, got nil")
	}

	if err.Error() != "database has no schema version (needs migration)" {
		t.Errorf("CheckDBMigrationStatus() error = %q, want error about needing migration", err.Error())
	}
}

func TestCheckDBMigrationStatus_AfterMigration(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	err := CheckDBMigrationStatus(db)
	if err != nil {
		t.Errorf("CheckDBMigrationStatus() after migration returned error: %v", err)
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}

	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after double migration returned error: %v", err)
	}
}

func TestSchema_RecordIDUnique(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	insert := `
		INSERT INTO daily_records (id, date, steps, distance_km, sleep_hours, flights_climbed, mood, device_id, owner_name, manual_sleep_entry)
		VALUES (?, 1704499170000000000, 100, 1.0, 7.0, 3, 3, 'dev-1', 'name', 0)
	`
	if _, err := db.Exec(insert, "rec-1"); err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	// Duplicate id should fail due to UNIQUE constraint
	if _, err := db.Exec(insert, "rec-1"); err == nil {
		t.Error("Expected unique constraint violation for duplicate id, but insert succeeded")
	}
}

func TestSchema_PendingSleepKeyedByDay(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if _, err := db.Exec("INSERT INTO pending_sleep (day_key, hours) VALUES ('2024-01-05', 7.5)"); err != nil {
		t.Fatalf("Failed to insert pending sleep: %v", err)
	}

	// Same day key is a primary key violation
	if _, err := db.Exec("INSERT INTO pending_sleep (day_key, hours) VALUES ('2024-01-05', 8.0)"); err == nil {
		t.Error("Expected primary key violation for duplicate day_key, but insert succeeded")
	}

	// Another day is fine
	if _, err := db.Exec("INSERT INTO pending_sleep (day_key, hours) VALUES ('2024-01-06', 8.0)"); err != nil {
		t.Errorf("Insert for another day failed: %v", err)
	}
}

// openTestDB opens an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return db
}
