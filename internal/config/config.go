// Package config holds the fixed configuration structure for the pipeline.
// Values come from COH2LIVE_-prefixed environment variables; callers may
// override individual fields afterwards (e.g. from CLI flags).
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full application configuration.
type Config struct {
	// LogFile is the CoH2 log file path. Auto-detected when empty.
	LogFile string `envconfig:"LOGFILE"`

	Stats Stats
}

// Stats configures the leaderboard stats client.
type Stats struct {
	// MaxConcurrent bounds the number of in-flight API requests per match.
	MaxConcurrent int64 `envconfig:"MAX_CONCURRENT" default:"8"`

	// RetryCount is the number of retries after a transient request failure.
	RetryCount uint64 `envconfig:"RETRY_COUNT" default:"3"`

	// BackoffBase is the initial backoff interval between retries.
	BackoffBase time.Duration `envconfig:"BACKOFF_BASE" default:"500ms"`

	// RequestTimeout bounds a single API request.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	// FetchTimeout bounds the whole per-match fetch; requests still
	// pending when it fires are abandoned and their players marked
	// unavailable.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"60s"`
}

// New loads configuration from the environment.
func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("coh2live", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks for unusable values.
func (c *Config) Validate() error {
	if c.Stats.MaxConcurrent < 1 {
		return fmt.Errorf("max concurrent requests must be positive, got %d", c.Stats.MaxConcurrent)
	}
	if c.Stats.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.Stats.RequestTimeout)
	}
	if c.Stats.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %v", c.Stats.FetchTimeout)
	}
	return nil
}
