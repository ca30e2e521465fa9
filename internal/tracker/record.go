package tracker

import "time"

// DailyRecord is one finalized wellbeing snapshot. Records are append-only:
// once written locally a record is never edited, and once pushed remotely it
// is treated as frozen. ID is the dedup key across the local and remote
// corpus.
type DailyRecord struct {
	ID               string    // UUID, assigned at capture, immutable
	Date             time.Time // instant of capture, not midnight-aligned
	Steps            int64
	DistanceKM       float64
	SleepHours       float64
	FlightsClimbed   int64
	Mood             int    // 1..5
	DeviceID         string // installation that created the record
	OwnerName        string // free text, not validated
	ManualSleepEntry bool   // SleepHours came from a manual entry, not the provider
}

// Validate checks field ranges on a locally assembled record.
func (r *DailyRecord) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	if r.Steps < 0 {
		return &ValidationError{Field: "steps", Reason: "must be non-negative"}
	}
	if r.DistanceKM < 0 {
		return &ValidationError{Field: "distance", Reason: "must be non-negative"}
	}
	if r.SleepHours < 0 {
		return &ValidationError{Field: "sleep", Reason: "must be non-negative"}
	}
	if r.FlightsClimbed < 0 {
		return &ValidationError{Field: "flightsClimbed", Reason: "must be non-negative"}
	}
	if r.Mood < 1 || r.Mood > 5 {
		return &ValidationError{Field: "mood", Reason: "must be between 1 and 5"}
	}
	return nil
}

// DayKey returns the calendar-day partition key for t in loc, e.g. "2024-01-05".
// Pending measurements and the capture gate are both keyed by it.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
