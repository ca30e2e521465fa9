package testutil

import (
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// FlakyDatabase wraps a real Database and lets tests inject failures into
// individual operations. A nil error field means the call passes through.
type FlakyDatabase struct {
	tracker.Database

	AppendErr       error
	ReplaceAllErr   error
	PendingSleepErr error
	ClearPendingErr error
	SetCursorErr    error
	ClearCursorErr  error
	LastMoodErr     error
	OwnerNameErr    error
}

// NewFlakyDatabase wraps db with no failures injected.
func NewFlakyDatabase(db tracker.Database) *FlakyDatabase {
	return &FlakyDatabase{Database: db}
}

func (f *FlakyDatabase) AppendRecord(record *tracker.DailyRecord) error {
	if f.AppendErr != nil {
		return f.AppendErr
	}
	return f.Database.AppendRecord(record)
}

func (f *FlakyDatabase) ReplaceAllRecords(records []*tracker.DailyRecord) error {
	if f.ReplaceAllErr != nil {
		return f.ReplaceAllErr
	}
	return f.Database.ReplaceAllRecords(records)
}

func (f *FlakyDatabase) PendingSleep(dayKey string) (float64, bool, error) {
	if f.PendingSleepErr != nil {
		return 0, false, f.PendingSleepErr
	}
	return f.Database.PendingSleep(dayKey)
}

func (f *FlakyDatabase) ClearPendingSleep(dayKey string) error {
	if f.ClearPendingErr != nil {
		return f.ClearPendingErr
	}
	return f.Database.ClearPendingSleep(dayKey)
}

func (f *FlakyDatabase) SetLastAutoCapture(t time.Time) error {
	if f.SetCursorErr != nil {
		return f.SetCursorErr
	}
	return f.Database.SetLastAutoCapture(t)
}

func (f *FlakyDatabase) ClearLastAutoCapture() error {
	if f.ClearCursorErr != nil {
		return f.ClearCursorErr
	}
	return f.Database.ClearLastAutoCapture()
}

func (f *FlakyDatabase) LastMood() (int, bool, error) {
	if f.LastMoodErr != nil {
		return 0, false, f.LastMoodErr
	}
	return f.Database.LastMood()
}

func (f *FlakyDatabase) OwnerName() (string, error) {
	if f.OwnerNameErr != nil {
		return "", f.OwnerNameErr
	}
	return f.Database.OwnerName()
}
