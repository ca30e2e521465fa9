package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/store/migrations"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Settings keys. The settings table holds the small process-wide scalars:
// the capture cursor and the last UI selections automatic capture reads.
const (
	settingLastAutoCapture = "last_auto_capture"
	settingOwnerName       = "owner_name"
	settingLastMood        = "last_mood"
)

// cursorTimeFormat preserves the full instant of the capture cursor,
// including its wall-clock offset, across restarts.
const cursorTimeFormat = time.RFC3339Nano

// SQLiteDatabase implements tracker.Database using SQLite. Record timestamps
// are stored as Unix nanoseconds so they round-trip exactly.
type SQLiteDatabase struct {
	db       *sql.DB
	path     string
	deviceID string
}

// NewSQLiteDatabase opens a SQLite database at path and stamps deviceID onto
// this installation's writes. path can be ":memory:" for an in-memory
// database. The schema is not touched; callers migrate explicitly.
func NewSQLiteDatabase(path, deviceID string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:       db,
		path:     path,
		deviceID: deviceID,
	}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate
// PRAGMAs. Exported for tools and tests that need a raw configured handle.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Record operations

const recordColumns = "id, date, steps, distance_km, sleep_hours, flights_climbed, mood, device_id, owner_name, manual_sleep_entry"

func (s *SQLiteDatabase) AppendRecord(record *tracker.DailyRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &tracker.PersistenceError{Op: "append record", Err: err}
	}
	defer tx.Rollback()

	if err := insertRecord(tx, record); err != nil {
		return &tracker.PersistenceError{Op: "append record", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &tracker.PersistenceError{Op: "append record", Err: err}
	}
	return nil
}

func (s *SQLiteDatabase) AllRecords() ([]*tracker.DailyRecord, error) {
	rows, err := s.db.Query("SELECT " + recordColumns + " FROM daily_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*tracker.DailyRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

func (s *SQLiteDatabase) ReplaceAllRecords(records []*tracker.DailyRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &tracker.PersistenceError{Op: "replace records", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily_records"); err != nil {
		return &tracker.PersistenceError{Op: "replace records", Err: err}
	}

	for _, record := range records {
		if err := insertRecord(tx, record); err != nil {
			return &tracker.PersistenceError{Op: "replace records", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &tracker.PersistenceError{Op: "replace records", Err: err}
	}
	return nil
}

func insertRecord(tx *sql.Tx, record *tracker.DailyRecord) error {
	_, err := tx.Exec(
		"INSERT INTO daily_records ("+recordColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID,
		record.Date.UnixNano(),
		record.Steps,
		record.DistanceKM,
		record.SleepHours,
		record.FlightsClimbed,
		record.Mood,
		record.DeviceID,
		record.OwnerName,
		record.ManualSleepEntry,
	)
	return err
}

func scanRecord(rows *sql.Rows) (*tracker.DailyRecord, error) {
	var record tracker.DailyRecord
	var dateNano int64
	err := rows.Scan(
		&record.ID,
		&dateNano,
		&record.Steps,
		&record.DistanceKM,
		&record.SleepHours,
		&record.FlightsClimbed,
		&record.Mood,
		&record.DeviceID,
		&record.OwnerName,
		&record.ManualSleepEntry,
	)
	if err != nil {
		return nil, err
	}
	record.Date = time.Unix(0, dateNano)
	return &record, nil
}

// Pending sleep operations

func (s *SQLiteDatabase) PendingSleep(dayKey string) (float64, bool, error) {
	var hours float64
	err := s.db.QueryRow("SELECT hours FROM pending_sleep WHERE day_key = ?", dayKey).Scan(&hours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reading pending sleep: %w", err)
	}
	return hours, true, nil
}

func (s *SQLiteDatabase) SetPendingSleep(dayKey string, hours float64) error {
	_, err := s.db.Exec(
		"INSERT INTO pending_sleep (day_key, hours) VALUES (?, ?) ON CONFLICT(day_key) DO UPDATE SET hours = excluded.hours",
		dayKey, hours,
	)
	if err != nil {
		return &tracker.PersistenceError{Op: "set pending sleep", Err: err}
	}
	return nil
}

func (s *SQLiteDatabase) ClearPendingSleep(dayKey string) error {
	if _, err := s.db.Exec("DELETE FROM pending_sleep WHERE day_key = ?", dayKey); err != nil {
		return &tracker.PersistenceError{Op: "clear pending sleep", Err: err}
	}
	return nil
}

// Capture cursor operations

func (s *SQLiteDatabase) LastAutoCapture() (time.Time, bool, error) {
	value, ok, err := s.getSetting(settingLastAutoCapture)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(cursorTimeFormat, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing capture cursor: %w", err)
	}
	return t, true, nil
}

func (s *SQLiteDatabase) SetLastAutoCapture(t time.Time) error {
	return s.setSetting(settingLastAutoCapture, t.Format(cursorTimeFormat))
}

func (s *SQLiteDatabase) ClearLastAutoCapture() error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", settingLastAutoCapture); err != nil {
		return &tracker.PersistenceError{Op: "clear capture cursor", Err: err}
	}
	return nil
}

// Settings operations

func (s *SQLiteDatabase) OwnerName() (string, error) {
	name, _, err := s.getSetting(settingOwnerName)
	return name, err
}

func (s *SQLiteDatabase) SetOwnerName(name string) error {
	return s.setSetting(settingOwnerName, name)
}

func (s *SQLiteDatabase) LastMood() (int, bool, error) {
	value, ok, err := s.getSetting(settingLastMood)
	if err != nil || !ok {
		return 0, false, err
	}
	mood, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parsing stored mood: %w", err)
	}
	return mood, true, nil
}

func (s *SQLiteDatabase) SetLastMood(mood int) error {
	return s.setSetting(settingLastMood, strconv.Itoa(mood))
}

func (s *SQLiteDatabase) getSetting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteDatabase) setSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &tracker.PersistenceError{Op: "set " + key, Err: err}
	}
	return nil
}

// DeviceID returns the identity of this installation.
func (s *SQLiteDatabase) DeviceID() string {
	return s.deviceID
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// MigrateUp brings the schema to the latest version.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements tracker.Database
var _ tracker.Database = (*SQLiteDatabase)(nil)
