package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for moodtracker.
type Config struct {
	DeviceID   string           `toml:"device_id"`
	OwnerName  string           `toml:"owner_name"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	TimeZone   string           `toml:"time_zone"` // IANA name; empty means the system zone
	Capture    CaptureConfig    `toml:"capture"`
	Database   DatabaseConfig   `toml:"database"`
	Remote     RemoteConfig     `toml:"remote"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Encryption EncryptionConfig `toml:"encryption"`
}

// CaptureConfig holds the daily trigger window for automatic captures.
// The window compensates for coarse external timers: a trigger landing
// anywhere in [trigger, trigger+window) may fire the day's capture.
type CaptureConfig struct {
	TriggerHour   int `toml:"trigger_hour"`
	TriggerMinute int `toml:"trigger_minute"`
	WindowSeconds int `toml:"window_seconds"`
}

// DatabaseConfig represents configuration for the local record database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// RemoteConfig represents configuration for the remote record collection.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type RemoteConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// MetricsConfig represents configuration for the activity-metrics provider.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type MetricsConfig struct {
	Type           string `toml:"type"`                      // "http" or "static"
	URL            string `toml:"url,omitempty"`             // only used for type=http
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"` // only used for type=http

	// Static values (only used when Type == "static"); default zeros model
	// a provider without permission.
	Steps          int64   `toml:"steps,omitempty"`
	DistanceKM     float64 `toml:"distance_km,omitempty"`
	SleepHours     float64 `toml:"sleep_hours,omitempty"`
	FlightsClimbed int64   `toml:"flights_climbed,omitempty"`
}

// EncryptionConfig holds the at-rest encryption mode for remote documents
// and paths to the age key pair.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "none" (default), "age", or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// NewConfig creates a new Config with the provided values and defaults
// matching the original application: trigger at 23:59 with a one-minute
// window, local sqlite storage, zeroed static metrics, no encryption.
func NewConfig(deviceID, baseDir string) *Config {
	return &Config{
		DeviceID: deviceID,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Capture: CaptureConfig{
			TriggerHour:   23,
			TriggerMinute: 59,
			WindowSeconds: 60,
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "data"),
		},
		Remote: RemoteConfig{
			Type:   "filesystem",
			Name:   "local",
			FSRoot: filepath.Join(baseDir, "remote"),
		},
		Metrics: MetricsConfig{
			Type: "static",
		},
		Encryption: EncryptionConfig{
			Type:           "none",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "moodtracker.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "moodtracker.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
