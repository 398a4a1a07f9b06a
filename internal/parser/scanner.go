// Package parser turns raw CoH2 log text into structured roster events.
//
// The scanner is incremental: it accepts arbitrary byte chunks and buffers
// any trailing partial line until a later chunk supplies its terminator,
// so the produced event sequence does not depend on how the input is split
// across chunks.
package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

// playerPattern matches roster-entry lines, e.g.
//
//	GAME -- Human Player: 0 SomeName 123456 0 german
//
// The name may contain spaces; the trailing fields are fixed-position.
var playerPattern = regexp.MustCompile(
	`GAME -- (Human|AI) Player: (\d+) (.*) (\d+) (\d) (` +
		strings.Join(match.LogKeys(), "|") + `)\r?$`,
)

// terminatorMarker identifies the line that ends a live multiplayer
// roster block.
const terminatorMarker = "Party::SetStatus - S_PLAYING"

// Scanner is a stateful incremental line scanner over log file chunks.
// It is not safe for concurrent use.
type Scanner struct {
	buf []byte
}

// NewScanner returns a scanner with an empty line buffer.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Feed consumes the next chunk of log text and returns the events parsed
// from the complete lines it yields. Unrecognized lines are skipped.
func (s *Scanner) Feed(chunk []byte) []match.Event {
	s.buf = append(s.buf, chunk...)

	var events []match.Event
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		line := string(s.buf[:i])
		s.buf = s.buf[i+1:]

		if ev, ok := ParseLine(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Pending reports whether a partial line is buffered.
func (s *Scanner) Pending() bool {
	return len(s.buf) > 0
}

// ParseLine parses a single complete log line.
// Returns false for lines that are neither roster entries nor terminators.
func ParseLine(line string) (match.Event, bool) {
	if strings.Contains(line, terminatorMarker) {
		return match.Event{Kind: match.EventTerminator}, true
	}

	m := playerPattern.FindStringSubmatch(line)
	if m == nil {
		return match.Event{}, false
	}

	slot, err := strconv.Atoi(m[2])
	if err != nil {
		return match.Event{}, false
	}
	profileID, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return match.Event{}, false
	}
	team, err := strconv.Atoi(m[5])
	if err != nil {
		return match.Event{}, false
	}
	faction, ok := match.FactionFromLogKey(m[6])
	if !ok {
		return match.Event{}, false
	}

	return match.Event{
		Kind: match.EventRoster,
		Entry: match.RosterEntry{
			Slot:      slot,
			Name:      m[3],
			ProfileID: profileID,
			Team:      team,
			Faction:   faction,
			AI:        m[1] == "AI",
		},
	}, true
}
