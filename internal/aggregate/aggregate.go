// Package aggregate merges the roster and the fetched stats into the
// display-ready report, running rank estimation for players without an
// observed rank.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/coh2live/coh2live-go/internal/estimate"
	"github.com/coh2live/coh2live-go/internal/relic"
	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
	"github.com/coh2live/coh2live-go/pkg/coh2live/report"
)

// Build assembles the report for a match from its fetched stats. stats
// must be in roster order, one entry per player, as produced by the
// stats client; unavailable players keep their roster identity with
// every stat marked unknown.
func Build(m *match.Match, stats []relic.PlayerStats) *report.Report {
	players := m.Players()
	refs := referencePairs(players, stats)

	rep := &report.Report{Match: m}
	for i, p := range players {
		rec := buildRecord(p, stats[i], refs)
		rep.Records[p.Team] = append(rep.Records[p.Team], rec)
	}
	resolvePremades(rep, players, stats)
	for team := 0; team < 2; team++ {
		rep.Teams[team] = teamAggregate(rep.Records[team])
	}
	return rep
}

// resolvePremades detects the arranged teams on each side: a team stat
// group counts when every member plays on the same side of this match
// and its entry sits on that side's team leaderboard. Member records
// carry the premade index; a player in several qualifying groups keeps
// the largest one.
func resolvePremades(rep *report.Report, players []match.Player, stats []relic.PlayerStats) {
	sideOf := make(map[int64]int, len(players))
	for i, p := range players {
		if id := profileIDOf(p, stats[i]); id > 0 {
			sideOf[id] = p.Team + 1
		}
	}

	seen := [2]map[string]int{make(map[string]int), make(map[string]int)}
	pos := [2]int{}
	for i, p := range players {
		rec := &rep.Records[p.Team][pos[p.Team]]
		pos[p.Team]++

		best, bestSize := -1, 0
		for _, ts := range stats[i].Teams {
			if len(ts.Members) < 2 || len(ts.Members) <= bestSize {
				continue
			}
			if !onSide(ts.Members, sideOf, p.Team) {
				continue
			}
			if ts.LeaderboardID != relic.TeamLeaderboardID(len(ts.Members), p.Faction.TeamFaction()) {
				continue
			}

			key := memberKey(ts.Members)
			idx, ok := seen[p.Team][key]
			if !ok {
				idx = len(rep.Premades[p.Team])
				seen[p.Team][key] = idx
				rep.Premades[p.Team] = append(rep.Premades[p.Team], report.PremadeTeam{
					Members:     ts.Members,
					Rank:        ts.Rank,
					RankLevel:   ts.RankLevel,
					HighestRank: ts.HighestRank,
					RankTotal:   ts.RankTotal,
				})
			}
			best, bestSize = idx, len(ts.Members)
		}
		if best >= 0 {
			idx := best
			rec.Premade = &idx
		}
	}
}

// profileIDOf prefers the alias-resolved profile ID over the roster one.
func profileIDOf(p match.Player, ps relic.PlayerStats) int64 {
	if ps.ProfileID > 0 {
		return ps.ProfileID
	}
	return p.ProfileID
}

func onSide(members []int64, sideOf map[int64]int, team int) bool {
	for _, id := range members {
		if sideOf[id] != team+1 {
			return false
		}
	}
	return true
}

func memberKey(members []int64) string {
	var b strings.Builder
	for _, id := range members {
		fmt.Fprintf(&b, "%d,", id)
	}
	return b.String()
}

// referencePairs collects (rating, rank) pairs per leaderboard pool from
// the match players that have both observed.
func referencePairs(players []match.Player, stats []relic.PlayerStats) map[int][]estimate.Ref {
	refs := make(map[int][]estimate.Ref)
	for i := range players {
		s := stats[i].Stats
		if s == nil || s.Rank == nil || s.Rating == nil {
			continue
		}
		refs[s.LeaderboardID] = append(refs[s.LeaderboardID], estimate.Ref{
			Rating: *s.Rating,
			Rank:   *s.Rank,
		})
	}
	return refs
}

func buildRecord(p match.Player, ps relic.PlayerStats, refs map[int][]estimate.Ref) report.PlayerRecord {
	rec := report.PlayerRecord{
		Player:       p,
		Alias:        ps.Alias,
		SteamProfile: ps.SteamProfile,
		Country:      ps.Country,
		Prestige:     ps.Prestige,
	}
	if ps.ProfileID > 0 {
		rec.Player.ProfileID = ps.ProfileID
	}

	s := ps.Stats
	if s == nil {
		rec.Unavailable = true
		rec.Prestige = -1
		return rec
	}

	rec.Wins = s.Wins
	rec.Losses = s.Losses
	rec.Drops = s.Drops
	rec.Streak = s.Streak
	rec.Rating = s.Rating
	rec.HighestRank = s.HighestRank
	rec.HighestRankLevel = s.HighestRankLevel
	rec.RankTotal = s.RankTotal

	rank, source := estimate.Rank(s.Rank, s.HighestRank, s.Rating, refs[s.LeaderboardID])
	if source == estimate.SourceNone {
		return rec
	}
	rec.Rank = &rank
	rec.RankEstimated = source.Estimated()
	rec.RankLevel = resolveLevel(rank, source, s)
	return rec
}

// resolveLevel picks the level matching the resolved rank: the observed
// level for an observed rank, the historic level for a historic rank,
// and the population-curve level for an interpolated one.
func resolveLevel(rank int, source estimate.Source, s *relic.LeaderboardStats) *int {
	switch source {
	case estimate.SourceObserved:
		return s.RankLevel
	case estimate.SourceHighest:
		return s.HighestRankLevel
	case estimate.SourceInterpolated:
		if s.RankTotal != nil {
			if lvl := estimate.LevelFromRank(rank, *s.RankTotal); lvl > 0 {
				return &lvl
			}
		}
	}
	return nil
}

// teamAggregate averages rank and level over teammates with a
// known-or-estimated value. Teams where no teammate has a usable value
// get nil averages.
func teamAggregate(records []report.PlayerRecord) report.TeamAggregate {
	var agg report.TeamAggregate
	var rankSum, levelSum float64
	var rankN, levelN int

	for i := range records {
		if r := records[i].Rank; r != nil {
			rankSum += float64(*r)
			rankN++
		}
		if l := records[i].RankLevel; l != nil {
			levelSum += float64(*l)
			levelN++
		}
	}
	if rankN > 0 {
		avg := rankSum / float64(rankN)
		agg.AvgRank = &avg
	}
	if levelN > 0 {
		avg := levelSum / float64(levelN)
		agg.AvgLevel = &avg
	}
	return agg
}
