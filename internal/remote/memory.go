package remote

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// MemoryRemote is an in-memory implementation of the RemoteStore interface.
// It keeps encoded documents keyed by record ID, making it useful for tests
// and offline runs. Safe for concurrent use.
type MemoryRemote struct {
	name  string
	codec *Codec
	mu    sync.RWMutex
	docs  map[string][]byte
}

// NewMemoryRemote creates a new in-memory remote collection.
func NewMemoryRemote(name string, codec *Codec) *MemoryRemote {
	return &MemoryRemote{
		name:  name,
		codec: codec,
		docs:  make(map[string][]byte),
	}
}

// Push upserts a record under its ID.
func (m *MemoryRemote) Push(_ context.Context, record *tracker.DailyRecord) error {
	data, err := m.codec.Encode(record)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[record.ID] = data
	return nil
}

// PullAll returns every valid record ordered by Date ascending. Documents
// failing validation are skipped.
func (m *MemoryRemote) PullAll(_ context.Context) ([]*tracker.DailyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*tracker.DailyRecord, 0, len(m.docs))
	for _, data := range m.docs {
		record, err := m.codec.Decode(data)
		if err != nil {
			var verr *tracker.ValidationError
			if errors.As(err, &verr) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	sortByDate(records)
	return records, nil
}

// ValidateSetup always succeeds for the in-memory remote.
func (m *MemoryRemote) ValidateSetup(context.Context) error {
	return nil
}

// PutRaw stores a pre-encoded document directly. Tests use it to plant
// documents this client would never write.
func (m *MemoryRemote) PutRaw(id string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[id] = data
}

// Len returns the number of stored documents.
func (m *MemoryRemote) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// sortByDate orders records by Date ascending, matching the remote
// collection's pull order.
func sortByDate(records []*tracker.DailyRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// Compile-time check that MemoryRemote implements tracker.RemoteStore
var _ tracker.RemoteStore = (*MemoryRemote)(nil)
