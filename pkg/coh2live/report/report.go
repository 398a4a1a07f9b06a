// Package report defines the display-ready records produced by the
// aggregation stage. Records are immutable once constructed; renderers
// consume them as-is.
//
// Optional numeric fields are pointers: nil means the value is unknown,
// which is distinct from an observed zero.
package report

import "github.com/coh2live/coh2live-go/pkg/coh2live/match"

// PlayerRecord is one player of a reported match together with their
// leaderboard statistics, fetched or estimated.
type PlayerRecord struct {
	Player match.Player

	// Identity data resolved from the API. Empty when unavailable.
	Alias        string
	SteamProfile string
	Country      string

	// Prestige level, or -1 when unknown.
	Prestige int

	// Unavailable marks a player whose stats could not be fetched.
	Unavailable bool

	Wins   int
	Losses int
	Drops  int

	// Streak is the signed count of consecutive same-outcome matches:
	// positive for a win streak, negative for a loss streak, 0 when
	// unknown or broken.
	Streak int

	Rating           *int
	Rank             *int
	RankLevel        *int
	HighestRank      *int
	HighestRankLevel *int
	RankTotal        *int

	// RankEstimated marks Rank (and RankLevel) as inferred rather than
	// observed. Renderers display estimates distinctly.
	RankEstimated bool

	// Premade indexes into the report's premade teams of the player's
	// side, or nil when the player queued solo.
	Premade *int
}

// NumGames is the player's total number of played games.
func (r *PlayerRecord) NumGames() int {
	return r.Wins + r.Losses
}

// WinRatio is wins relative to played games.
// The second return value is false when no games were played: a player
// with zero games has an undefined ratio, not a 0% one.
func (r *PlayerRecord) WinRatio() (float64, bool) {
	if r.Unavailable || r.NumGames() == 0 {
		return 0, false
	}
	return float64(r.Wins) / float64(r.NumGames()), true
}

// DropRatio is drops relative to played games. Undefined when no games
// were played.
func (r *PlayerRecord) DropRatio() (float64, bool) {
	if r.Unavailable || r.NumGames() == 0 {
		return 0, false
	}
	return float64(r.Drops) / float64(r.NumGames()), true
}

// RelativeRank is the player's rank relative to the total number of
// ranked players in their leaderboard. Undefined without a known rank
// and rank total.
func (r *PlayerRecord) RelativeRank() (float64, bool) {
	if r.Rank == nil || r.RankTotal == nil || *r.RankTotal <= 0 {
		return 0, false
	}
	return float64(*r.Rank) / float64(*r.RankTotal), true
}

// TeamAggregate is the average rank and level across the teammates of one
// team that have a known-or-estimated value. A nil average means no
// teammate had a usable value; it is never zero-filled.
type TeamAggregate struct {
	AvgRank  *float64
	AvgLevel *float64
}

// PremadeTeam is an arranged (pre-made) team among the players of one
// side, with its record on the applicable team leaderboard.
type PremadeTeam struct {
	// Members are the profile IDs of the arranged team, sorted.
	Members []int64

	Rank        *int
	RankLevel   *int
	HighestRank *int
	RankTotal   *int
}

// Report is the aggregated result for one reported match.
type Report struct {
	Match   *match.Match
	Records [2][]PlayerRecord
	Teams   [2]TeamAggregate

	// Premades are the arranged teams detected per side.
	Premades [2][]PremadeTeam
}

// AllRecords returns the records of both teams in roster order.
func (r *Report) AllRecords() []PlayerRecord {
	out := make([]PlayerRecord, 0, len(r.Records[0])+len(r.Records[1]))
	out = append(out, r.Records[0]...)
	out = append(out, r.Records[1]...)
	return out
}
