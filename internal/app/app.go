package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
	"github.com/vbagdi/Mood-Tracker-291/internal/encryption"
	"github.com/vbagdi/Mood-Tracker-291/internal/health"
	"github.com/vbagdi/Mood-Tracker-291/internal/remote"
	"github.com/vbagdi/Mood-Tracker-291/internal/store"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// TrackerApp is the application layer between the CLI and TrackerService.
// It constructs all dependencies from config and manages their lifecycle
// on Close.
type TrackerApp struct {
	cfg       *config.Config
	loc       *time.Location
	db        tracker.Database
	remote    tracker.RemoteStore
	encryptor tracker.Encryptor
	codec     *remote.Codec
	metrics   tracker.MetricsProvider
	service   *tracker.TrackerService
	clock     tracker.Clock
	logger    tracker.Logger
	logFile   *os.File
}

// NewTrackerApp creates a fully wired TrackerApp from the given config.
// The caller must call Close when done.
func NewTrackerApp(ctx context.Context, cfg *config.Config) (*TrackerApp, error) {
	loc := time.Local
	if cfg.TimeZone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return nil, fmt.Errorf("loading time zone %q: %w", cfg.TimeZone, err)
		}
	}

	logger, logFile, err := newLogger(cfg.LogDir, cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := store.NewDatabaseFromConfig(cfg.Database, cfg.DeviceID)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	codec := remote.NewCodec()
	if enc != nil {
		codec = remote.NewEncryptedCodec(enc)
	}

	rs, err := remote.NewRemoteFromConfig(ctx, cfg.Remote, codec)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating remote store: %w", err)
	}

	metrics, err := health.NewProviderFromConfig(cfg.Metrics)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating metrics provider: %w", err)
	}

	window := time.Duration(cfg.Capture.WindowSeconds) * time.Second
	gate := tracker.NewCaptureGate(db, loc, cfg.Capture.TriggerHour, cfg.Capture.TriggerMinute, window)
	pending := tracker.NewPendingSleepBuffer(db)

	adapter := &slogAdapter{l: logger}
	svc := tracker.NewTrackerService(db, rs, metrics, gate, pending, adapter, tracker.UUIDGenerator{}, loc)

	return &TrackerApp{
		cfg:       cfg,
		loc:       loc,
		db:        db,
		remote:    rs,
		encryptor: enc,
		codec:     codec,
		metrics:   metrics,
		service:   svc,
		clock:     tracker.RealClock{},
		logger:    adapter,
		logFile:   logFile,
	}, nil
}

// SaveNow captures a record immediately, bypassing the automatic-capture gate.
// If moodOverride is between 1 and 5 it is used; otherwise the stored mood
// selection applies.
func (a *TrackerApp) SaveNow(ctx context.Context, moodOverride int) (*tracker.DailyRecord, error) {
	now := a.clock.Now()

	metrics, err := a.metrics.FetchToday(ctx)
	if err != nil {
		a.logger.Warn("metrics fetch failed", "error", err)
		metrics = tracker.Metrics{}
	}

	mood := moodOverride
	if mood < 1 || mood > 5 {
		mood, err = a.service.StoredMood()
		if err != nil {
			return nil, err
		}
	}

	name, err := a.service.StoredOwnerName()
	if err != nil {
		return nil, fmt.Errorf("reading owner name: %w", err)
	}

	return a.service.CaptureNow(ctx, now, tracker.CaptureInput{
		Metrics:   metrics,
		Mood:      mood,
		OwnerName: name,
	})
}

// Tick runs one automatic-capture check at the current instant. A nil record
// with a nil error means the gate denied the capture.
func (a *TrackerApp) Tick(ctx context.Context) (*tracker.DailyRecord, error) {
	return a.service.AutomaticCaptureTick(ctx, a.clock.Now())
}

// Watch runs automatic-capture checks once a minute until ctx is cancelled.
func (a *TrackerApp) Watch(ctx context.Context) error {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			record, err := a.Tick(ctx)
			if err != nil {
				a.logger.Error("automatic capture failed", "error", err)
				continue
			}
			if record != nil {
				a.logger.Info("automatic capture succeeded", "id", record.ID)
			}
		}
	}
}

// SetSleep stores a manual sleep entry for today.
func (a *TrackerApp) SetSleep(hours float64) error {
	return a.service.SetPendingSleep(a.clock.Now(), hours)
}

// SetMood durably stores the current mood selection.
func (a *TrackerApp) SetMood(mood int) error {
	return a.service.RecordMood(mood)
}

// SetName durably stores the user's display name.
func (a *TrackerApp) SetName(name string) error {
	return a.service.SetOwnerName(name)
}

// History returns all locally stored records in insertion order.
func (a *TrackerApp) History() ([]*tracker.DailyRecord, error) {
	return a.service.History()
}

// Refresh replaces the local view with the remote collection and returns the
// number of records pulled.
func (a *TrackerApp) Refresh(ctx context.Context) (int, error) {
	return a.service.Refresh(ctx)
}

// EncryptionConfigured reports whether remote documents are encrypted, in
// which case Unlock must be called before Refresh.
func (a *TrackerApp) EncryptionConfigured() bool {
	return a.encryptor != nil
}

// Unlock decrypts the private key with the passphrase so pulled documents can
// be read.
func (a *TrackerApp) Unlock(passphrase string) error {
	if a.encryptor == nil {
		return fmt.Errorf("encryption is not configured")
	}
	dc, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}
	a.codec.Unlock(dc)
	return nil
}

// SetupKeys generates the encryption key pair, protecting the private key
// with the passphrase.
func (a *TrackerApp) SetupKeys(passphrase string) error {
	if a.encryptor == nil {
		return fmt.Errorf("encryption is not configured")
	}
	if a.encryptor.IsConfigured() {
		return fmt.Errorf("encryption keys already exist")
	}
	return a.encryptor.Setup(passphrase)
}

// ValidateRemote verifies that the configured remote store is reachable.
func (a *TrackerApp) ValidateRemote(ctx context.Context) error {
	return a.remote.ValidateSetup(ctx)
}

// Close releases the database and the log file.
func (a *TrackerApp) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}
