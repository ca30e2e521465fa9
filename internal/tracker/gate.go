package tracker

import (
	"fmt"
	"sync"
	"time"
)

// CaptureGate decides whether an automatic capture may fire. It grants at
// most one acquisition per calendar day, and only inside the daily trigger
// window — external timers are coarse, so the window tolerates a trigger
// landing anywhere within it. Day-boundary reset is computed from the stored
// cursor, never scheduled: if the process sleeps through a day's entire
// window, that day is skipped for good.
type CaptureGate struct {
	db     Database
	loc    *time.Location
	hour   int
	minute int
	window time.Duration

	mu       sync.Mutex
	prev     time.Time
	prevSet  bool
	acquired bool
}

// NewCaptureGate creates a gate whose trigger window starts at hour:minute
// (in loc) and stays open for the given duration.
func NewCaptureGate(db Database, loc *time.Location, hour, minute int, window time.Duration) *CaptureGate {
	return &CaptureGate{
		db:     db,
		loc:    loc,
		hour:   hour,
		minute: minute,
		window: window,
	}
}

// TryAcquire returns true and records now as the last automatic capture iff
// now falls inside the trigger window and no capture has been recorded for
// now's calendar day. The check-and-set is a single critical section so
// concurrent triggers cannot both succeed. On any error no state changes.
func (g *CaptureGate) TryAcquire(now time.Time) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inWindow(now) {
		return false, nil
	}

	last, ok, err := g.db.LastAutoCapture()
	if err != nil {
		return false, fmt.Errorf("reading capture cursor: %w", err)
	}
	if ok && SameDay(last, now, g.loc) {
		return false, nil
	}

	if err := g.db.SetLastAutoCapture(now); err != nil {
		return false, fmt.Errorf("recording capture cursor: %w", err)
	}

	g.prev = last
	g.prevSet = ok
	g.acquired = true
	return true, nil
}

// Revert restores the cursor to its value before the last successful
// TryAcquire. The orchestrator calls it when a granted capture fails to
// persist, reopening the day's gate so a retry can succeed. Calling Revert
// with nothing to revert is a no-op.
func (g *CaptureGate) Revert() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.acquired {
		return nil
	}

	var err error
	if g.prevSet {
		err = g.db.SetLastAutoCapture(g.prev)
	} else {
		err = g.db.ClearLastAutoCapture()
	}
	if err != nil {
		return fmt.Errorf("reverting capture cursor: %w", err)
	}

	g.acquired = false
	return nil
}

// inWindow reports whether now falls inside [target, target+window) for
// now's own calendar day.
func (g *CaptureGate) inWindow(now time.Time) bool {
	local := now.In(g.loc)
	target := time.Date(local.Year(), local.Month(), local.Day(), g.hour, g.minute, 0, 0, g.loc)
	return !local.Before(target) && local.Before(target.Add(g.window))
}
