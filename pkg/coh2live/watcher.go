package coh2live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coh2live/coh2live-go/internal/aggregate"
	"github.com/coh2live/coh2live-go/internal/logfinder"
	"github.com/coh2live/coh2live-go/internal/parser"
	"github.com/coh2live/coh2live-go/internal/relic"
	"github.com/coh2live/coh2live-go/internal/tailer"
	"github.com/coh2live/coh2live-go/internal/tracker"
	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
	"github.com/coh2live/coh2live-go/pkg/coh2live/report"
)

// Notice is emitted once per detected multiplayer match, at the moment
// the roster is judged complete and before any stats are fetched.
type Notice struct {
	Type      match.Type
	Signature match.Signature
	Time      time.Time
}

// StatsFetcher resolves a detected match into a display-ready report.
// FetchMatch never fails as a whole: players whose stats could not be
// obtained are marked unavailable in the report.
type StatsFetcher interface {
	FetchMatch(ctx context.Context, m *match.Match) *report.Report
}

// apiFetcher is the default StatsFetcher backed by the Relic API.
type apiFetcher struct {
	client *relic.Client
}

func (f *apiFetcher) FetchMatch(ctx context.Context, m *match.Match) *report.Report {
	return aggregate.Build(m, f.client.FetchMatch(ctx, m))
}

func (f *apiFetcher) InitLeaderboards(ctx context.Context) error {
	return f.client.InitLeaderboards(ctx)
}

// Watcher monitors the CoH2 log file and reports matches.
type Watcher struct {
	cfg     *watchConfig
	logFile string
	fetcher StatsFetcher
	logger  *slog.Logger

	mu       sync.Mutex
	closed   bool
	watching bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
}

// NewWatcher creates a watcher.
// Validates options and locates the log file.
// Does NOT start goroutines (cheap to call).
func NewWatcher(opts ...Option) (*Watcher, error) {
	cfg := applyOptions(opts)

	logFile, err := logfinder.FindLogFile(cfg.logFile)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fetcher := cfg.fetcher
	if fetcher == nil {
		fetcher = &apiFetcher{client: relic.NewClient(cfg.stats, logger)}
	}

	return &Watcher{
		cfg:     cfg,
		logFile: logFile,
		fetcher: fetcher,
		logger:  logger,
	}, nil
}

// Watch starts watching and returns channels for reports, match notices
// and errors. All channels close on ctx cancellation or fatal error.
// Watch can only be called once per Watcher instance.
func (w *Watcher) Watch(ctx context.Context) (<-chan *report.Report, <-chan Notice, <-chan error) {
	w.mu.Lock()
	if w.closed || w.watching {
		w.mu.Unlock()
		reports := make(chan *report.Report)
		notices := make(chan Notice)
		errs := make(chan error)
		close(reports)
		close(notices)
		close(errs)
		return reports, notices, errs
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	reports := make(chan *report.Report)
	notices := make(chan Notice, w.cfg.noticeBuffer)
	errs := make(chan error, tailerErrBuffer)

	go w.run(ctx, reports, notices, errs)

	return reports, notices, errs
}

// tailerErrBuffer mirrors the tailer's error buffering so forwarded
// errors are not lost while the consumer renders a report.
const tailerErrBuffer = 16

// Close stops the watcher and releases resources.
// Safe to call multiple times.
// Blocks until the goroutine has exited.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true

	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

// fetchResult pairs a finished fetch with the match it was started for,
// so stale results can be dropped by signature comparison.
type fetchResult struct {
	m   *match.Match
	rep *report.Report
}

func (w *Watcher) run(ctx context.Context, reports chan<- *report.Report, notices chan<- Notice, errs chan<- error) {
	defer close(w.doneCh)
	defer close(reports)
	defer close(notices)
	defer close(errs)

	if init, ok := w.fetcher.(interface{ InitLeaderboards(context.Context) error }); ok {
		if err := init.InitLeaderboards(ctx); err != nil {
			// Rank totals stay unknown; stats fetching still works.
			w.logger.Warn("leaderboard init failed", "error", err)
			sendError(errs, err)
		}
	}

	t, err := tailer.Open(ctx, w.logFile, w.cfg.tail)
	if err != nil {
		sendError(errs, err)
		return
	}
	defer func() { _ = t.Stop() }()

	scanner := parser.NewScanner()
	trk := tracker.New(w.logger)

	resultCh := make(chan fetchResult, 1)
	var current match.Signature
	var fetchCancel context.CancelFunc
	defer func() {
		if fetchCancel != nil {
			fetchCancel()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case line, ok := <-t.Lines():
			if !ok {
				return
			}
			for _, ev := range scanner.Feed([]byte(line + "\n")) {
				m, ready := trk.Observe(ev)
				if !ready {
					continue
				}
				w.dispatch(ctx, m, notices, resultCh, &current, &fetchCancel)
			}

		case err, ok := <-t.Errors():
			if !ok {
				return
			}
			sendError(errs, err)

		case res := <-resultCh:
			if res.m.Signature != current {
				// Superseded while fetching; discard.
				continue
			}
			// The fetch settled; the ready match counts as reported.
			trk.Reported()
			select {
			case reports <- res.rep:
			case <-ctx.Done():
				return
			}
		}
	}
}

// dispatch notifies about a newly detected match and starts its stats
// fetch, cancelling any fetch still in flight for a previous match.
func (w *Watcher) dispatch(ctx context.Context, m *match.Match, notices chan<- Notice, resultCh chan<- fetchResult, current *match.Signature, fetchCancel *context.CancelFunc) {
	select {
	case notices <- Notice{Type: m.Type, Signature: m.Signature, Time: time.Now()}:
	default:
		// A slow notifier never blocks parsing.
	}

	if *fetchCancel != nil {
		(*fetchCancel)()
	}
	*current = m.Signature

	fctx, cancel := context.WithCancel(ctx)
	*fetchCancel = cancel

	go func() {
		rep := w.fetcher.FetchMatch(fctx, m)
		select {
		case resultCh <- fetchResult{m: m, rep: rep}:
		case <-fctx.Done():
		}
	}()
}

// sendError sends an error non-blocking.
func sendError(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
		// Drop error if the buffer is full.
	}
}

// Watch is a convenience function that creates a watcher and starts
// watching. Returns an error immediately for initialization failures.
func Watch(ctx context.Context, opts ...Option) (<-chan *report.Report, <-chan Notice, <-chan error, error) {
	w, err := NewWatcher(opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	reports, notices, errs := w.Watch(ctx)
	return reports, notices, errs, nil
}
