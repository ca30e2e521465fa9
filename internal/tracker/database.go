package tracker

import "time"

// Database provides durable local storage: the authoritative record sequence
// plus the small day-keyed and process-wide state around capture. Mutating
// methods must be transactional — a failed write leaves no partial state and
// returns a *PersistenceError.
type Database interface {
	// Record operations

	// AppendRecord adds a record to the local sequence and persists it
	// before returning. No partial visibility: on failure the sequence is
	// unchanged.
	AppendRecord(record *DailyRecord) error

	// AllRecords returns all records in insertion order.
	AllRecords() ([]*DailyRecord, error)

	// ReplaceAllRecords atomically swaps the entire sequence. Used only by
	// remote refresh; records are accepted as given. This is a full
	// authoritative overwrite and may drop local-only records that never
	// reached the remote collection.
	ReplaceAllRecords(records []*DailyRecord) error

	// Pending sleep measurement (at most one per calendar day)

	// PendingSleep returns the manual sleep entry stored under dayKey,
	// if one is present. A value stored under a different day never matches.
	PendingSleep(dayKey string) (float64, bool, error)

	// SetPendingSleep stores a manual sleep entry for dayKey, overwriting
	// any prior value for that day.
	SetPendingSleep(dayKey string, hours float64) error

	// ClearPendingSleep removes the entry for dayKey. Clearing an absent
	// entry is a no-op.
	ClearPendingSleep(dayKey string) error

	// Capture cursor

	// LastAutoCapture returns the instant of the last successful automatic
	// capture, or false if none has ever occurred.
	LastAutoCapture() (time.Time, bool, error)

	// SetLastAutoCapture records the instant of an automatic capture.
	SetLastAutoCapture(t time.Time) error

	// ClearLastAutoCapture resets the cursor to "never".
	ClearLastAutoCapture() error

	// Settings

	// OwnerName returns the user-chosen display name, empty if never set.
	OwnerName() (string, error)

	// SetOwnerName stores the user-chosen display name.
	SetOwnerName(name string) error

	// LastMood returns the most recently selected mood, or false if the
	// user never picked one.
	LastMood() (int, bool, error)

	// SetLastMood stores the most recently selected mood.
	SetLastMood(mood int) error

	// DeviceID returns the identity of this installation. The store stamps
	// it onto captured records; callers never supply it.
	DeviceID() string

	// Close closes the database connection.
	Close() error
}
