package tracker

import "context"

// RemoteStore is the shared remote record collection, addressed by record ID.
// The remote is the eventual source of truth across devices; all operations
// are best-effort and must respect the caller's context deadline.
type RemoteStore interface {
	// Push upserts a record into the collection under its ID. Re-pushing
	// the same ID overwrites with identical data, which is safe.
	Push(ctx context.Context, record *DailyRecord) error

	// PullAll fetches every record in the collection ordered by Date
	// ascending. Documents that fail schema validation are skipped, not
	// fatal to the batch.
	PullAll(ctx context.Context) ([]*DailyRecord, error)

	// ValidateSetup verifies that the remote collection is reachable and
	// properly configured.
	ValidateSetup(ctx context.Context) error
}
