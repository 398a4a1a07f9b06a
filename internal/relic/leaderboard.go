package relic

import (
	"fmt"

	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
)

// Relic leaderboard IDs are a fixed function of match mode and faction.
// Solo boards for the original factions occupy 4..19 (mode-major), the
// British boards were appended later at 51..54, and team boards sit at
// 20..25 (2v2 Axis through 4v4 Allies).

// SoloLeaderboardID returns the leaderboard for games queued solo in the
// given mode with the given faction.
func SoloLeaderboardID(t match.Type, f match.Faction) int {
	if f == match.FactionBritish {
		return 50 + int(t)
	}
	return int(t)*4 + f.RelicID()
}

// TeamLeaderboardID returns the leaderboard for pre-made teams of the
// given size playing the given side. Team boards exist for sizes 2..4.
func TeamLeaderboardID(teamSize int, tf match.TeamFaction) int {
	return 20 + (teamSize-2)*2 + int(tf)
}

// IsTeamLeaderboard reports whether the ID denotes a pre-made team board.
func IsTeamLeaderboard(id int) bool {
	return id >= TeamLeaderboardID(2, match.TeamAxis) &&
		id <= TeamLeaderboardID(4, match.TeamAllies)
}

// LeaderboardName returns a human-readable name for a known board.
func LeaderboardName(id int) string {
	for t := match.Type1v1; t <= match.Type4v4; t++ {
		for _, key := range match.LogKeys() {
			f, _ := match.FactionFromLogKey(key)
			if SoloLeaderboardID(t, f) == id {
				return fmt.Sprintf("%s_%s", t, f)
			}
		}
	}
	for size := 2; size <= 4; size++ {
		for _, tf := range []match.TeamFaction{match.TeamAxis, match.TeamAllies} {
			if TeamLeaderboardID(size, tf) == id {
				return fmt.Sprintf("Team_of_%d_%s", size, tf)
			}
		}
	}
	return fmt.Sprintf("leaderboard_%d", id)
}

// AllLeaderboardIDs returns every board the client tracks rank totals for.
func AllLeaderboardIDs() []int {
	var ids []int
	for t := match.Type1v1; t <= match.Type4v4; t++ {
		for _, key := range match.LogKeys() {
			f, _ := match.FactionFromLogKey(key)
			ids = append(ids, SoloLeaderboardID(t, f))
		}
	}
	for size := 2; size <= 4; size++ {
		ids = append(ids, TeamLeaderboardID(size, match.TeamAxis))
		ids = append(ids, TeamLeaderboardID(size, match.TeamAllies))
	}
	return ids
}
