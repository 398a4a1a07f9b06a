package coh2live

import (
	"log/slog"
	"time"

	"github.com/coh2live/coh2live-go/internal/config"
	"github.com/coh2live/coh2live-go/internal/tailer"
)

// defaultNoticeBuffer is the capacity of the notice channel. Notices are
// sent non-blocking so a slow notifier cannot stall the parse loop.
const defaultNoticeBuffer = 4

// Option configures Watch behavior using the functional options pattern.
type Option func(*watchConfig)

// watchConfig holds internal configuration for the watcher.
type watchConfig struct {
	logFile      string
	stats        config.Stats
	tail         tailer.Config
	logger       *slog.Logger
	fetcher      StatsFetcher
	noticeBuffer int
}

// defaultWatchConfig returns a watchConfig with sensible defaults.
func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		stats: config.Stats{
			MaxConcurrent:  8,
			RetryCount:     3,
			BackoffBase:    500 * time.Millisecond,
			RequestTimeout: 10 * time.Second,
			FetchTimeout:   60 * time.Second,
		},
		tail:         tailer.DefaultConfig(),
		noticeBuffer: defaultNoticeBuffer,
	}
}

// applyOptions applies functional options to a watchConfig.
func applyOptions(opts []Option) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogFile sets the CoH2 log file path.
// If not set, auto-detects from the default documents location.
// Can also be set via the COH2LIVE_LOGFILE environment variable.
func WithLogFile(path string) Option {
	return func(c *watchConfig) {
		c.logFile = path
	}
}

// WithMaxConcurrent bounds the number of in-flight API requests per
// match. Default: 8.
func WithMaxConcurrent(n int64) Option {
	return func(c *watchConfig) {
		c.stats.MaxConcurrent = n
	}
}

// WithRetryCount sets the number of retries after a transient API
// request failure. Default: 3.
func WithRetryCount(n uint64) Option {
	return func(c *watchConfig) {
		c.stats.RetryCount = n
	}
}

// WithBackoffBase sets the initial backoff interval between retries.
// Default: 500ms.
func WithBackoffBase(d time.Duration) Option {
	return func(c *watchConfig) {
		c.stats.BackoffBase = d
	}
}

// WithRequestTimeout bounds a single API request. Default: 10s.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *watchConfig) {
		c.stats.RequestTimeout = d
	}
}

// WithFetchTimeout bounds the whole per-match stats fetch. Requests
// still pending when it fires are abandoned and their players marked
// unavailable. Default: 60s.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *watchConfig) {
		c.stats.FetchTimeout = d
	}
}

// WithReplayFromStart reads the log from the beginning instead of
// seeking to the end, replaying historical matches.
func WithReplayFromStart() Option {
	return func(c *watchConfig) {
		c.tail.FromStart = true
	}
}

// WithPollTail uses polling instead of filesystem notifications for
// tailing. More compatible, less efficient.
func WithPollTail() Option {
	return func(c *watchConfig) {
		c.tail.Poll = true
	}
}

// WithOpenRetry configures the fixed interval and attempt budget for
// opening a temporarily unavailable log file.
func WithOpenRetry(interval time.Duration, limit int) Option {
	return func(c *watchConfig) {
		c.tail.OpenRetryInterval = interval
		c.tail.OpenRetryLimit = limit
	}
}

// WithLogger sets the slog logger for debug output.
// If nil (default), logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// WithStatsFetcher replaces the leaderboard API fetcher. Used in tests
// and by callers that cache or proxy stats.
func WithStatsFetcher(f StatsFetcher) Option {
	return func(c *watchConfig) {
		c.fetcher = f
	}
}
