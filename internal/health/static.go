package health

import (
	"context"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// StaticProvider returns a fixed set of health metrics. It stands in for a
// real device source on machines without one, and doubles as a deterministic
// provider for tests.
type StaticProvider struct {
	metrics tracker.Metrics
}

// NewStaticProvider creates a provider that always reports the given metrics.
func NewStaticProvider(metrics tracker.Metrics) *StaticProvider {
	return &StaticProvider{metrics: metrics}
}

func (p *StaticProvider) FetchToday(context.Context) (tracker.Metrics, error) {
	return p.metrics, nil
}

var _ tracker.MetricsProvider = (*StaticProvider)(nil)
