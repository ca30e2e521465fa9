package tracker

import "context"

// Metrics is a best-effort snapshot of today's activity from the external
// metrics provider. Fields are zero when permission or data is absent —
// that is a valid snapshot, not an error.
type Metrics struct {
	Steps          int64
	DistanceKM     float64
	SleepHours     float64
	FlightsClimbed int64
}

// MetricsProvider is the external activity-metrics collaborator.
// Implementations must return within the context deadline; a failed fetch
// degrades a capture to zeroed metrics rather than blocking it.
type MetricsProvider interface {
	FetchToday(ctx context.Context) (Metrics, error)
}
