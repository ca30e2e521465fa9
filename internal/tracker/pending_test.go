package tracker_test

import (
	"errors"
	"testing"

	"github.com/vbagdi/Mood-Tracker-291/internal/testutil"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

func TestPendingSleepBuffer_SetGetClear(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	if _, ok, err := buf.Get("2024-01-05"); err != nil || ok {
		t.Fatalf("Get() on empty buffer = ok=%v, err=%v; want absent", ok, err)
	}

	if err := buf.Set("2024-01-05", 7.5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	hours, ok, err := buf.Get("2024-01-05")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || hours != 7.5 {
		t.Errorf("Get() = %v, %v; want 7.5, true", hours, ok)
	}

	if err := buf.Clear("2024-01-05"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := buf.Get("2024-01-05"); ok {
		t.Error("value should be gone after Clear")
	}
}

func TestPendingSleepBuffer_OverwritesSameDay(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	if err := buf.Set("2024-01-05", 6); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := buf.Set("2024-01-05", 8.25); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}

	hours, ok, err := buf.Get("2024-01-05")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if hours != 8.25 {
		t.Errorf("Get() = %v, want the overwritten value 8.25", hours)
	}
}

func TestPendingSleepBuffer_DayIsolation(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	if err := buf.Set("2024-01-04", 7); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, ok, _ := buf.Get("2024-01-05"); ok {
		t.Error("a value stored under another day must not be returned")
	}
}

func TestPendingSleepBuffer_ZeroIsPresent(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	if err := buf.Set("2024-01-05", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	hours, ok, err := buf.Get("2024-01-05")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || hours != 0 {
		t.Errorf("Get() = %v, %v; an explicit zero must read back as present", hours, ok)
	}
}

func TestPendingSleepBuffer_RejectsNegative(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	err := buf.Set("2024-01-05", -1)
	var verr *tracker.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Set(-1) error = %v, want *ValidationError", err)
	}
	if verr.Field != "sleep" {
		t.Errorf("Field = %q, want %q", verr.Field, "sleep")
	}

	if _, ok, _ := buf.Get("2024-01-05"); ok {
		t.Error("rejected value must not be stored")
	}
}

func TestPendingSleepBuffer_ClearIsIdempotent(t *testing.T) {
	buf := tracker.NewPendingSleepBuffer(testutil.NewTestDatabase(t))

	if err := buf.Clear("2024-01-05"); err != nil {
		t.Fatalf("Clear() on absent entry error = %v", err)
	}
}
