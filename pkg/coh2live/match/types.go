// Package match defines the core roster and match types for CoH2 log parsing.
//
// This package is separated from the main coh2live package to avoid import
// cycles between pkg/coh2live and the internal pipeline packages.
package match

import "fmt"

// Type is the match mode, identified by its team size (1v1 through 4v4).
type Type int

const (
	Type1v1 Type = 1
	Type2v2 Type = 2
	Type3v3 Type = 3
	Type4v4 Type = 4
)

// TypeFromPlayerCount derives the match type from the total player count.
// Returns false for odd counts or counts outside 2..8.
func TypeFromPlayerCount(n int) (Type, bool) {
	if n < 2 || n > 8 || n%2 != 0 {
		return 0, false
	}
	return Type(n / 2), true
}

// TeamSize is the number of players on each team.
func (t Type) TeamSize() int { return int(t) }

func (t Type) String() string {
	if t < Type1v1 || t > Type4v4 {
		return "unknown"
	}
	return fmt.Sprintf("%dv%d", int(t), int(t))
}

// RosterEntry is one player line parsed from the log file.
type RosterEntry struct {
	// Slot is the player's position in the log roster block (0-based).
	Slot int

	// Name is the display name as written to the log.
	Name string

	// ProfileID is the Relic profile ID, or 0 when the log carries none.
	ProfileID int64

	// Team is the team index (0 or 1).
	Team int

	// Faction the entry plays.
	Faction Faction

	// AI marks computer players.
	AI bool
}

// EventKind classifies parsed log lines.
type EventKind int

const (
	// EventRoster is a player line of the current roster block.
	EventRoster EventKind = iota

	// EventTerminator signals that the current roster block is complete
	// and the match is a live multiplayer game.
	EventTerminator
)

// Event is a structured log event produced by the parser.
type Event struct {
	Kind  EventKind
	Entry RosterEntry // set for EventRoster
}

// Player is a roster entry promoted into a validated match.
type Player struct {
	Slot      int
	Name      string
	ProfileID int64
	Team      int
	Faction   Faction
}

// Match is a complete multiplayer match: two teams of equal size.
type Match struct {
	Type      Type
	Teams     [2][]Player
	Signature Signature
}

// Players returns all players of both teams in slot order.
func (m *Match) Players() []Player {
	players := make([]Player, 0, 2*m.Type.TeamSize())
	players = append(players, m.Teams[0]...)
	players = append(players, m.Teams[1]...)
	return players
}

// New builds a Match from a roster block. It returns an error when the
// roster contains AI players, has an odd or out-of-range player count,
// or is not evenly split into two teams.
func New(entries []RosterEntry) (*Match, error) {
	mt, ok := TypeFromPlayerCount(len(entries))
	if !ok {
		return nil, fmt.Errorf("invalid roster size %d", len(entries))
	}

	m := &Match{Type: mt}
	for _, e := range entries {
		if e.AI {
			return nil, fmt.Errorf("roster contains AI player %q", e.Name)
		}
		if e.Team != 0 && e.Team != 1 {
			return nil, fmt.Errorf("player %q has invalid team %d", e.Name, e.Team)
		}
		m.Teams[e.Team] = append(m.Teams[e.Team], Player{
			Slot:      e.Slot,
			Name:      e.Name,
			ProfileID: e.ProfileID,
			Team:      e.Team,
			Faction:   e.Faction,
		})
	}

	if len(m.Teams[0]) != len(m.Teams[1]) {
		return nil, fmt.Errorf("teams are uneven: %d vs %d", len(m.Teams[0]), len(m.Teams[1]))
	}

	m.Signature = ComputeSignature(mt, entries)
	return m, nil
}
