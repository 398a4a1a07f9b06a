// Package tailer provides file tailing for the CoH2 log file.
package tailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nxadm/tail"
)

// tailerErrBuffer is the buffer size for the error channel.
// A small buffer prevents error loss during brief moments when the
// consumer is busy processing lines.
const tailerErrBuffer = 16

// Tailer wraps nxadm/tail for the CoH2 log file. The game rewrites the
// log on restart, so the tailer reopens on truncation or replacement and
// resumes from offset zero.
type Tailer struct {
	t      *tail.Tail
	ctx    context.Context
	cancel context.CancelFunc
	lines  chan string
	errors chan error
	doneCh chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Config holds configuration for tailing.
type Config struct {
	// FromStart reads from the beginning of the file instead of seeking
	// to the end (the default, so historical matches are not replayed).
	FromStart bool

	// Poll uses polling instead of filesystem notifications.
	Poll bool

	// OpenRetryInterval is the fixed interval between open attempts
	// while the file is temporarily missing or locked.
	OpenRetryInterval time.Duration

	// OpenRetryLimit bounds open attempts before giving up.
	OpenRetryLimit int
}

// DefaultConfig returns the default configuration for the CoH2 log.
func DefaultConfig() Config {
	return Config{
		FromStart:         false,
		Poll:              false,
		OpenRetryInterval: 2 * time.Second,
		OpenRetryLimit:    30,
	}
}

// Open opens a tailer for the log file, retrying on a fixed interval
// while the file is temporarily unavailable. The retry budget is
// bounded; exhausting it is the one fatal error of the pipeline.
func Open(ctx context.Context, filepath string, cfg Config) (*Tailer, error) {
	limit := cfg.OpenRetryLimit
	if limit <= 0 {
		limit = 1
	}
	interval := cfg.OpenRetryInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt < limit; attempt++ {
		t, err := New(ctx, filepath, cfg)
		if err == nil {
			return t, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
	return nil, fmt.Errorf("log file unreachable after %d attempts: %w", limit, lastErr)
}

// New creates a Tailer for the specified file.
// The provided context controls the tailer's lifecycle.
func New(ctx context.Context, filepath string, cfg Config) (*Tailer, error) {
	location := &tail.SeekInfo{Offset: 0, Whence: 2} // end of file
	if cfg.FromStart {
		location = &tail.SeekInfo{Offset: 0, Whence: 0}
	}

	t, err := tail.TailFile(filepath, tail.Config{
		Follow:    true,
		ReOpen:    true, // recover from truncation and file replacement
		Poll:      cfg.Poll,
		MustExist: true,
		Location:  location,
	})
	if err != nil {
		return nil, fmt.Errorf("opening tail: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	tailer := &Tailer{
		t:      t,
		ctx:    ctx,
		cancel: cancel,
		lines:  make(chan string),
		errors: make(chan error, tailerErrBuffer),
		doneCh: make(chan struct{}),
	}

	go tailer.run()

	return tailer, nil
}

// Lines returns a channel that receives log lines.
func (t *Tailer) Lines() <-chan string {
	return t.lines
}

// Errors returns a channel that receives errors from tailing.
// Errors are sent non-blocking; if the channel is not read, errors are
// dropped.
func (t *Tailer) Errors() <-chan error {
	return t.errors
}

// Stop stops tailing and closes all channels.
// Safe to call multiple times.
func (t *Tailer) Stop() error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return nil
	}
	t.stopped = true
	t.mu.Unlock()

	t.cancel()
	<-t.doneCh // wait for run() to finish
	return t.t.Stop()
}

func (t *Tailer) run() {
	defer close(t.doneCh)
	defer close(t.lines)
	defer close(t.errors)

	for {
		select {
		case <-t.ctx.Done():
			return
		case line, ok := <-t.t.Lines:
			if !ok {
				return
			}
			if line.Err != nil {
				select {
				case t.errors <- fmt.Errorf("tail: %w", line.Err):
				case <-t.ctx.Done():
					return
				default:
					// Drop only if the buffer is full.
				}
				continue
			}
			select {
			case t.lines <- line.Text:
			case <-t.ctx.Done():
				return
			}
		}
	}
}
