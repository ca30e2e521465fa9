package tracker

import (
	"context"
	"fmt"
	"time"
)

// defaultMood is used for automatic captures when the user never picked one.
const defaultMood = 3

// pushTimeout bounds the best-effort remote push so a capture never blocks
// indefinitely on the network.
const pushTimeout = 15 * time.Second

// CaptureInput carries the caller-supplied pieces of a capture.
type CaptureInput struct {
	Metrics   Metrics
	Mood      int
	OwnerName string
}

// TrackerService is the orchestration layer that assembles finalized daily
// records from current metrics, the pending manual sleep entry, and the mood
// input, and keeps the local store and the remote collection in sync.
// Local durability always comes first: a record is persisted locally before
// any remote operation is attempted, and a remote failure never unwinds a
// local append.
type TrackerService struct {
	db      Database
	remote  RemoteStore
	metrics MetricsProvider
	gate    *CaptureGate
	pending *PendingSleepBuffer
	logger  Logger
	idgen   IDGenerator
	loc     *time.Location
}

// NewTrackerService creates a new TrackerService with the provided dependencies.
func NewTrackerService(db Database, remote RemoteStore, metrics MetricsProvider, gate *CaptureGate, pending *PendingSleepBuffer, logger Logger, idgen IDGenerator, loc *time.Location) *TrackerService {
	return &TrackerService{
		db:      db,
		remote:  remote,
		metrics: metrics,
		gate:    gate,
		pending: pending,
		logger:  logger,
		idgen:   idgen,
		loc:     loc,
	}
}

// CaptureNow assembles and finalizes a daily record at the given instant.
//
// The pending manual sleep entry for now's calendar day, if present, takes
// precedence over the provider's sleep figure and marks the record as a
// manual sleep entry. The record is appended to the local store first; only
// after local durability is achieved is the remote push attempted, and a
// push failure is logged rather than returned. The pending entry is cleared
// last, so a failed capture leaves it intact for the retry.
func (s *TrackerService) CaptureNow(ctx context.Context, now time.Time, input CaptureInput) (*DailyRecord, error) {
	dayKey := DayKey(now, s.loc)

	sleep := input.Metrics.SleepHours
	manual := false
	if v, ok, err := s.pending.Get(dayKey); err != nil {
		return nil, fmt.Errorf("reading pending sleep: %w", err)
	} else if ok {
		sleep = v
		manual = true
	}

	record := &DailyRecord{
		ID:               s.idgen.New(),
		Date:             now,
		Steps:            input.Metrics.Steps,
		DistanceKM:       input.Metrics.DistanceKM,
		SleepHours:       sleep,
		FlightsClimbed:   input.Metrics.FlightsClimbed,
		Mood:             input.Mood,
		DeviceID:         s.db.DeviceID(),
		OwnerName:        input.OwnerName,
		ManualSleepEntry: manual,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.AppendRecord(record); err != nil {
		return nil, fmt.Errorf("appending record: %w", err)
	}

	// Local durability achieved. Everything below is best-effort.
	pushCtx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()
	if err := s.remote.Push(pushCtx, record); err != nil {
		s.logger.Warn("remote push failed", "id", record.ID, "error", err)
	}

	if err := s.pending.Clear(dayKey); err != nil {
		s.logger.Warn("clearing pending sleep failed", "day", dayKey, "error", err)
	}

	s.logger.Info("record captured", "id", record.ID, "day", dayKey, "manual_sleep", manual)
	return record, nil
}

// AutomaticCaptureTick runs one automatic-capture check. Gate denial (already
// captured today, or outside the trigger window) returns (nil, nil) — it is a
// normal outcome, not an error. When the gate grants, fresh metrics are
// fetched best-effort and the capture proceeds with the stored mood and owner
// name; a failed capture reverts the gate so the day is not burned.
func (s *TrackerService) AutomaticCaptureTick(ctx context.Context, now time.Time) (*DailyRecord, error) {
	granted, err := s.gate.TryAcquire(now)
	if err != nil {
		return nil, fmt.Errorf("capture gate: %w", err)
	}
	if !granted {
		return nil, nil
	}

	metrics, err := s.metrics.FetchToday(ctx)
	if err != nil {
		// Best-effort provider: a record with zeroed metrics still counts.
		s.logger.Warn("metrics fetch failed", "error", err)
		metrics = Metrics{}
	}

	mood, name, err := s.storedMoodAndName()
	if err != nil {
		s.revertGate()
		return nil, err
	}

	record, err := s.CaptureNow(ctx, now, CaptureInput{Metrics: metrics, Mood: mood, OwnerName: name})
	if err != nil {
		s.revertGate()
		return nil, err
	}
	return record, nil
}

// Refresh replaces the local view with the remote collection. A pull failure
// leaves the local view unchanged. The swap is a full authoritative
// overwrite: local records that never reached the remote are dropped.
func (s *TrackerService) Refresh(ctx context.Context) (int, error) {
	records, err := s.remote.PullAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if prior, err := s.db.AllRecords(); err == nil && len(prior) > len(records) {
		s.logger.Warn("refresh dropping local-only records", "local", len(prior), "remote", len(records))
	}

	if err := s.db.ReplaceAllRecords(records); err != nil {
		return 0, fmt.Errorf("replacing local records: %w", err)
	}

	s.logger.Info("local view refreshed", "count", len(records))
	return len(records), nil
}

// History returns all locally stored records in insertion order.
func (s *TrackerService) History() ([]*DailyRecord, error) {
	return s.db.AllRecords()
}

// SetPendingSleep stores a manual sleep entry for now's calendar day.
func (s *TrackerService) SetPendingSleep(now time.Time, hours float64) error {
	return s.pending.Set(DayKey(now, s.loc), hours)
}

// RecordMood durably stores the user's current mood selection so the next
// automatic capture picks it up.
func (s *TrackerService) RecordMood(mood int) error {
	if mood < 1 || mood > 5 {
		return &ValidationError{Field: "mood", Reason: "must be between 1 and 5"}
	}
	return s.db.SetLastMood(mood)
}

// SetOwnerName durably stores the user's display name.
func (s *TrackerService) SetOwnerName(name string) error {
	return s.db.SetOwnerName(name)
}

// StoredMood returns the durably stored mood selection, defaulting when the
// user never picked one.
func (s *TrackerService) StoredMood() (int, error) {
	mood, ok, err := s.db.LastMood()
	if err != nil {
		return 0, fmt.Errorf("reading stored mood: %w", err)
	}
	if !ok || mood < 1 || mood > 5 {
		return defaultMood, nil
	}
	return mood, nil
}

// StoredOwnerName returns the durably stored display name, empty if unset.
func (s *TrackerService) StoredOwnerName() (string, error) {
	return s.db.OwnerName()
}

func (s *TrackerService) storedMoodAndName() (int, string, error) {
	mood, err := s.StoredMood()
	if err != nil {
		return 0, "", err
	}
	name, err := s.db.OwnerName()
	if err != nil {
		return 0, "", fmt.Errorf("reading owner name: %w", err)
	}
	return mood, name, nil
}

func (s *TrackerService) revertGate() {
	if err := s.gate.Revert(); err != nil {
		s.logger.Error("capture gate revert failed", "error", err)
	}
}
