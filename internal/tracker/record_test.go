package tracker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

func validRecord() *tracker.DailyRecord {
	return &tracker.DailyRecord{
		ID:             "rec-1",
		Date:           time.Date(2024, 1, 5, 23, 59, 30, 0, time.UTC),
		Steps:          8200,
		DistanceKM:     6.4,
		SleepHours:     7.5,
		FlightsClimbed: 12,
		Mood:           4,
		DeviceID:       "device-a1",
		OwnerName:      "Vidur",
	}
}

func TestDailyRecord_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*tracker.DailyRecord)
		wantField string
	}{
		{name: "valid", mutate: func(r *tracker.DailyRecord) {}},
		{name: "zero metrics valid", mutate: func(r *tracker.DailyRecord) {
			r.Steps, r.DistanceKM, r.SleepHours, r.FlightsClimbed = 0, 0, 0, 0
		}},
		{name: "empty owner name valid", mutate: func(r *tracker.DailyRecord) { r.OwnerName = "" }},
		{name: "empty id", mutate: func(r *tracker.DailyRecord) { r.ID = "" }, wantField: "id"},
		{name: "zero date", mutate: func(r *tracker.DailyRecord) { r.Date = time.Time{} }, wantField: "date"},
		{name: "negative steps", mutate: func(r *tracker.DailyRecord) { r.Steps = -1 }, wantField: "steps"},
		{name: "negative distance", mutate: func(r *tracker.DailyRecord) { r.DistanceKM = -0.1 }, wantField: "distance"},
		{name: "negative sleep", mutate: func(r *tracker.DailyRecord) { r.SleepHours = -2 }, wantField: "sleep"},
		{name: "negative flights", mutate: func(r *tracker.DailyRecord) { r.FlightsClimbed = -3 }, wantField: "flightsClimbed"},
		{name: "mood too low", mutate: func(r *tracker.DailyRecord) { r.Mood = 0 }, wantField: "mood"},
		{name: "mood too high", mutate: func(r *tracker.DailyRecord) { r.Mood = 6 }, wantField: "mood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := validRecord()
			tt.mutate(r)

			err := r.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *tracker.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestDayKey(t *testing.T) {
	t.Parallel()

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "utc afternoon",
			t:    time.Date(2024, 1, 5, 14, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-01-05",
		},
		{
			name: "late utc evening crosses into next berlin day",
			t:    time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC),
			loc:  berlin,
			want: "2024-01-06",
		},
		{
			name: "single digit month and day padded",
			t:    time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-03-07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tracker.DayKey(tt.t, tt.loc); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same instant",
			a:    time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "same day different hours",
			a:    time.Date(2024, 1, 5, 0, 0, 1, 0, time.UTC),
			b:    time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "one second across midnight",
			a:    time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC),
			b:    time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "same day of month different month",
			a:    time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tracker.SameDay(tt.a, tt.b, time.UTC); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
