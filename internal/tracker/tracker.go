// Package tracker decides when a parsed roster block constitutes a new,
// complete multiplayer match worth reporting.
package tracker

import (
	"log/slog"

	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

// State of the tracker's match detection.
type State int

const (
	// StateIdle means no roster block is in progress.
	StateIdle State = iota

	// StateCollecting means roster lines of a block are being gathered.
	StateCollecting

	// StateReady means a complete, distinct match has been detected and
	// handed to the caller.
	StateReady

	// StateReported means the detected match has been dispatched
	// downstream.
	StateReported
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	case StateReady:
		return "ready"
	case StateReported:
		return "reported"
	}
	return "unknown"
}

// Tracker is a single-goroutine state machine over parser events.
type Tracker struct {
	state    State
	entries  []match.RosterEntry
	reported match.Signature
	hasRep   bool
	logger   *slog.Logger
}

// New returns an idle tracker. logger may be nil to disable logging.
func New(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{logger: logger}
}

// State returns the current detection state.
func (t *Tracker) State() State {
	return t.state
}

// Observe consumes the next parser event. When a terminator completes a
// valid roster whose signature differs from the last reported match, the
// built match is returned and the tracker moves to ready.
func (t *Tracker) Observe(ev match.Event) (*match.Match, bool) {
	switch ev.Kind {
	case match.EventRoster:
		t.observeRoster(ev.Entry)
		return nil, false
	case match.EventTerminator:
		return t.observeTerminator()
	}
	return nil, false
}

// Reported marks the ready match as dispatched. The tracker reverts to
// idle before the next roster block.
func (t *Tracker) Reported() {
	if t.state == StateReady {
		t.state = StateReported
	}
}

func (t *Tracker) observeRoster(e match.RosterEntry) {
	// Slot 0 starts a fresh roster block; the log rewrites the full
	// block on every status echo.
	if e.Slot == 0 || t.state != StateCollecting {
		t.entries = t.entries[:0]
	}
	t.entries = append(t.entries, e)
	t.state = StateCollecting
	t.logger.Debug("roster entry",
		"slot", e.Slot, "name", e.Name, "team", e.Team,
		"faction", e.Faction.LogKey(), "ai", e.AI)
}

func (t *Tracker) observeTerminator() (*match.Match, bool) {
	if t.state != StateCollecting || len(t.entries) == 0 {
		return nil, false
	}

	m, err := match.New(t.entries)
	t.entries = t.entries[:0]
	if err != nil {
		t.logger.Debug("roster rejected", "reason", err)
		t.state = StateIdle
		return nil, false
	}

	if t.hasRep && m.Signature == t.reported {
		// Same match echoed by the log; nothing new to report.
		t.state = StateIdle
		return nil, false
	}

	t.reported = m.Signature
	t.hasRep = true
	t.state = StateReady
	t.logger.Info("match ready", "type", m.Type.String(), "signature", m.Signature.String())
	return m, true
}
