package parser

import (
	"reflect"
	"testing"

	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

const rosterBlock = "GAME -- Human Player: 0 Alice 1001 0 german\n" +
	"GAME -- Human Player: 1 Bob The Builder 1002 0 soviet\n" +
	"GAME -- Human Player: 2 Carol 1003 1 aef\n" +
	"GAME -- Human Player: 3 Dave 1004 1 british\n" +
	"Some unrelated engine output\n" +
	"Party::SetStatus - S_PLAYING\n"

func feedAll(s *Scanner, chunks []string) []match.Event {
	var events []match.Event
	for _, c := range chunks {
		events = append(events, s.Feed([]byte(c))...)
	}
	return events
}

func TestScanner_RosterBlock(t *testing.T) {
	events := feedAll(NewScanner(), []string{rosterBlock})

	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	if events[4].Kind != match.EventTerminator {
		t.Errorf("last event kind = %v, want terminator", events[4].Kind)
	}

	want := match.RosterEntry{
		Slot: 1, Name: "Bob The Builder", ProfileID: 1002,
		Team: 0, Faction: match.FactionSoviet,
	}
	if got := events[1].Entry; got != want {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
}

func TestScanner_ChunkBoundaryIndependence(t *testing.T) {
	whole := feedAll(NewScanner(), []string{rosterBlock})

	splits := [][]string{
		// One byte at a time.
		func() []string {
			var chunks []string
			for _, b := range []byte(rosterBlock) {
				chunks = append(chunks, string(b))
			}
			return chunks
		}(),
		// Split mid-line.
		{rosterBlock[:17], rosterBlock[17:60], rosterBlock[60:]},
		// Split exactly at a newline.
		{rosterBlock[:44], rosterBlock[44:]},
	}

	for i, chunks := range splits {
		got := feedAll(NewScanner(), chunks)
		if !reflect.DeepEqual(got, whole) {
			t.Errorf("split %d: events differ from unsplit parse", i)
		}
	}
}

func TestScanner_PartialLineBuffered(t *testing.T) {
	s := NewScanner()
	events := s.Feed([]byte("GAME -- Human Player: 0 Alice 1001 0 ger"))
	if len(events) != 0 {
		t.Fatalf("got %d events from partial line, want 0", len(events))
	}
	if !s.Pending() {
		t.Error("scanner should have a pending partial line")
	}

	events = s.Feed([]byte("man\n"))
	if len(events) != 1 {
		t.Fatalf("got %d events after completing line, want 1", len(events))
	}
	if s.Pending() {
		t.Error("scanner should have no pending data")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want match.Event
		ok   bool
	}{
		{
			name: "human player",
			line: "GAME -- Human Player: 2 Carol 1003 1 aef",
			want: match.Event{Kind: match.EventRoster, Entry: match.RosterEntry{
				Slot: 2, Name: "Carol", ProfileID: 1003, Team: 1, Faction: match.FactionUSForces,
			}},
			ok: true,
		},
		{
			name: "ai player",
			line: "GAME -- AI Player: 1 CPU - Standard 0 1 west_german",
			want: match.Event{Kind: match.EventRoster, Entry: match.RosterEntry{
				Slot: 1, Name: "CPU - Standard", ProfileID: 0, Team: 1,
				Faction: match.FactionOKW, AI: true,
			}},
			ok: true,
		},
		{
			name: "terminator",
			line: "12:34:56.78 Party::SetStatus - S_PLAYING",
			want: match.Event{Kind: match.EventTerminator},
			ok:   true,
		},
		{
			name: "carriage return",
			line: "GAME -- Human Player: 0 Alice 1001 0 german\r",
			want: match.Event{Kind: match.EventRoster, Entry: match.RosterEntry{
				Slot: 0, Name: "Alice", ProfileID: 1001, Team: 0, Faction: match.FactionWehrmacht,
			}},
			ok: true,
		},
		{
			name: "unknown faction",
			line: "GAME -- Human Player: 0 Alice 1001 0 martian",
			ok:   false,
		},
		{
			name: "unrelated line",
			line: "GAME -- Scenario: some_map_2p",
			ok:   false,
		},
		{
			name: "empty line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("event = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScanner_NameWithSpaces(t *testing.T) {
	ev, ok := ParseLine("GAME -- Human Player: 0 A Name With  Spaces 42 0 soviet")
	if !ok {
		t.Fatal("line not recognized")
	}
	if got := ev.Entry.Name; got != "A Name With  Spaces" {
		t.Errorf("name = %q, want %q", got, "A Name With  Spaces")
	}
}
