package health

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// metricsResponse is the JSON body returned by a health metrics endpoint.
type metricsResponse struct {
	Steps          int64   `json:"steps"`
	DistanceKM     float64 `json:"distanceKm"`
	SleepHours     float64 `json:"sleepHours"`
	FlightsClimbed int64   `json:"flightsClimbed"`
}

// HTTPProvider fetches today's health metrics from an HTTP endpoint, such as
// a health data export agent running on the local network.
type HTTPProvider struct {
	client *resty.Client
	url    string
}

// NewHTTPProvider creates a provider that queries the given URL.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPProvider{
		client: client,
		url:    url,
	}
}

// FetchToday requests today's metrics. Negative values from the endpoint are
// clamped to zero so a misbehaving source never produces an invalid record.
func (p *HTTPProvider) FetchToday(ctx context.Context) (tracker.Metrics, error) {
	var body metricsResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(p.url)
	if err != nil {
		return tracker.Metrics{}, fmt.Errorf("fetching health metrics: %w", err)
	}
	if resp.IsError() {
		return tracker.Metrics{}, fmt.Errorf("health metrics endpoint returned %s", resp.Status())
	}

	return tracker.Metrics{
		Steps:          clampInt(body.Steps),
		DistanceKM:     clampFloat(body.DistanceKM),
		SleepHours:     clampFloat(body.SleepHours),
		FlightsClimbed: clampInt(body.FlightsClimbed),
	}, nil
}

func clampInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var _ tracker.MetricsProvider = (*HTTPProvider)(nil)
