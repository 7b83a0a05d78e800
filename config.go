package tokebi

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultEndpoint is the production Tokebi collection endpoint.
const DefaultEndpoint = "https://tokebi-api.vercel.app"

// Config holds the client configuration. The zero value plus APIKey and
// GameID is usable; NewClient fills the remaining fields with defaults.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string `env:"TOKEBI_API_KEY" yaml:"api_key"`
	// GameID is the locally configured game identifier. Required. A
	// successful RegisterGame call supersedes it with the server-assigned
	// canonical id.
	GameID string `env:"TOKEBI_GAME_ID" yaml:"game_id"`
	// Endpoint is the API base URL.
	Endpoint string `env:"TOKEBI_ENDPOINT" yaml:"endpoint"`
	// Environment tags every event, e.g. "production" or "development".
	Environment string `env:"TOKEBI_ENVIRONMENT" yaml:"environment"`
	// Platform tags every event with the producing platform.
	Platform string `env:"TOKEBI_PLATFORM" yaml:"platform"`
	// PlatformVersion is reported during game registration.
	PlatformVersion string `env:"TOKEBI_PLATFORM_VERSION" yaml:"platform_version"`

	// FlushInterval is the period of the automatic flush timer.
	FlushInterval time.Duration `env:"TOKEBI_FLUSH_INTERVAL" yaml:"flush_interval"`
	// MaxQueueSize forces an immediate flush when the queue reaches it.
	MaxQueueSize int `env:"TOKEBI_MAX_QUEUE_SIZE" yaml:"max_queue_size"`
	// MaxStoredEvents caps the offline buffer; oldest events are evicted
	// first.
	MaxStoredEvents int `env:"TOKEBI_MAX_STORED_EVENTS" yaml:"max_stored_events"`
	// StorageDir is the base directory of the default file storage adapter.
	StorageDir string `env:"TOKEBI_STORAGE_DIR" yaml:"storage_dir"`
	// ReplayDelay is how long after Init the replayed offline events are
	// flushed, so startup is not blocked on the network.
	ReplayDelay time.Duration `yaml:"replay_delay"`

	// Adapters override the default collaborators.
	Adapters struct {
		HTTPAdapter      HTTPAdapter
		StorageAdapter   StorageAdapter
		LoggerAdapter    LoggerAdapter
		SchedulerAdapter SchedulerAdapter
	} `env:"-" yaml:"-"`

	// Clock overrides the time source, for tests.
	Clock Clock `env:"-" yaml:"-"`
}

// ConfigFromEnv loads configuration from TOKEBI_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConfigFromFile loads configuration from a YAML file, with TOKEBI_*
// environment variables taking precedence over file values.
func ConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate reports whether the configuration can produce deliverable events.
func (c *Config) Validate() error {
	if c.APIKey == "" || c.GameID == "" {
		return ErrNotConfigured
	}
	return nil
}

// configured mirrors Validate for the internal drop-and-log path.
func (c *Config) configured() bool {
	return c.APIKey != "" && c.GameID != ""
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.Platform == "" {
		c.Platform = "go"
	}
	if c.PlatformVersion == "" {
		c.PlatformVersion = runtime.Version()
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 30 * time.Second
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.MaxStoredEvents <= 0 {
		c.MaxStoredEvents = 500
	}
	if c.ReplayDelay <= 0 {
		c.ReplayDelay = time.Second
	}
	if c.StorageDir == "" {
		c.StorageDir = defaultStorageDir()
	}
}

func defaultStorageDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "tokebi"
	}
	return filepath.Join(base, "tokebi")
}
