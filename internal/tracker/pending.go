package tracker

// PendingSleepBuffer holds at most one user-entered sleep value per calendar
// day, durably. The value is consumed by the day's capture and cleared; a
// value recorded under a previous day is never returned for the current day
// because every lookup is keyed by dayKey.
type PendingSleepBuffer struct {
	db Database
}

func NewPendingSleepBuffer(db Database) *PendingSleepBuffer {
	return &PendingSleepBuffer{db: db}
}

// Set stores hours for dayKey, overwriting any prior value for that day.
// If persistence fails the caller must not assume the value was stored.
func (b *PendingSleepBuffer) Set(dayKey string, hours float64) error {
	if hours < 0 {
		return &ValidationError{Field: "sleep", Reason: "must be non-negative"}
	}
	return b.db.SetPendingSleep(dayKey, hours)
}

// Get returns the stored value for dayKey if one is present. A zero value
// with present=true is distinct from "no value yet".
func (b *PendingSleepBuffer) Get(dayKey string) (float64, bool, error) {
	return b.db.PendingSleep(dayKey)
}

// Clear removes the value for dayKey. Idempotent.
func (b *PendingSleepBuffer) Clear(dayKey string) error {
	return b.db.ClearPendingSleep(dayKey)
}
