package health

import (
	"fmt"
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// NewProviderFromConfig creates the metrics provider described by the
// configuration.
func NewProviderFromConfig(cfg config.MetricsConfig) (tracker.MetricsProvider, error) {
	switch cfg.Type {
	case "static":
		return NewStaticProvider(tracker.Metrics{
			Steps:          cfg.Steps,
			DistanceKM:     cfg.DistanceKM,
			SleepHours:     cfg.SleepHours,
			FlightsClimbed: cfg.FlightsClimbed,
		}), nil
	case "http":
		if cfg.URL == "" {
			return nil, fmt.Errorf("http metrics provider requires a url")
		}
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		return NewHTTPProvider(cfg.URL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown metrics provider type: %s", cfg.Type)
	}
}
