package testutil

import (
	"context"
	"sync"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// FlakyRemote wraps a real RemoteStore and lets tests inject failures.
type FlakyRemote struct {
	tracker.RemoteStore

	mu      sync.Mutex
	pushErr error
	pullErr error
	pushes  int
}

// NewFlakyRemote wraps rs with no failures injected.
func NewFlakyRemote(rs tracker.RemoteStore) *FlakyRemote {
	return &FlakyRemote{RemoteStore: rs}
}

func (f *FlakyRemote) Push(ctx context.Context, record *tracker.DailyRecord) error {
	f.mu.Lock()
	f.pushes++
	err := f.pushErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.RemoteStore.Push(ctx, record)
}

func (f *FlakyRemote) PullAll(ctx context.Context) ([]*tracker.DailyRecord, error) {
	f.mu.Lock()
	err := f.pullErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.RemoteStore.PullAll(ctx)
}

// FailPushWith makes subsequent pushes return err.
func (f *FlakyRemote) FailPushWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushErr = err
}

// FailPullWith makes subsequent pulls return err.
func (f *FlakyRemote) FailPullWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pullErr = err
}

// Pushes returns the number of Push calls so far, including failed ones.
func (f *FlakyRemote) Pushes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pushes
}
