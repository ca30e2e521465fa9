package testutil

import (
	"context"
	"sync"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// StubMetricsProvider returns preset metrics, or a preset error,
// and counts fetches. Safe for concurrent use.
type StubMetricsProvider struct {
	mu      sync.Mutex
	metrics tracker.Metrics
	err     error
	fetches int
}

// NewStubMetricsProvider creates a provider reporting the given metrics.
func NewStubMetricsProvider(metrics tracker.Metrics) *StubMetricsProvider {
	return &StubMetricsProvider{metrics: metrics}
}

func (p *StubMetricsProvider) FetchToday(context.Context) (tracker.Metrics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	if p.err != nil {
		return tracker.Metrics{}, p.err
	}
	return p.metrics, nil
}

// FailWith makes subsequent fetches return err.
func (p *StubMetricsProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Fetches returns the number of FetchToday calls so far.
func (p *StubMetricsProvider) Fetches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches
}
