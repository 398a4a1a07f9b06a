package coh2live

import (
	"bufio"
	"context"
	"errors"
	"iter"
	"os"

	"github.com/coh2live/coh2live-go/internal/parser"
	"github.com/coh2live/coh2live-go/internal/tracker"
	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

// ParseLine parses a single CoH2 log line.
//
// Return values:
//   - (Event, true): the line is a roster entry or block terminator
//   - (Event{}, false): the line is not relevant to match detection
func ParseLine(line string) (match.Event, bool) {
	return parser.ParseLine(line)
}

// ParseFile parses a CoH2 log file and returns an iterator over its
// roster and terminator events. The file is opened lazily on first
// iteration, so the returned iterator is cheap to create but must be
// consumed to release resources.
//
// Unrecognized lines are skipped; the only errors yielded are file
// access errors and context cancellation.
func ParseFile(ctx context.Context, path string) iter.Seq2[match.Event, error] {
	if path == "" {
		return func(yield func(match.Event, error) bool) {
			yield(match.Event{}, errors.New("coh2live: path required"))
		}
	}

	return func(yield func(match.Event, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(match.Event{}, err)
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		// Increase buffer size for long lines
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 512*1024)

		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield(match.Event{}, err)
				return
			}

			ev, ok := parser.ParseLine(scanner.Text())
			if !ok {
				continue
			}
			if !yield(ev, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(match.Event{}, err)
		}
	}
}

// LastMatch parses a log file and returns the last complete multiplayer
// match it records, or nil when the log contains none.
func LastMatch(ctx context.Context, path string) (*match.Match, error) {
	trk := tracker.New(nil)
	var last *match.Match

	for ev, err := range ParseFile(ctx, path) {
		if err != nil {
			return nil, err
		}
		if m, ready := trk.Observe(ev); ready {
			last = m
			trk.Reported()
		}
	}
	return last, nil
}
