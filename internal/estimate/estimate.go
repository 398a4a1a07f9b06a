// Package estimate fills in missing rank values for match players.
package estimate

import (
	"math"
	"sort"
)

// Source tells where a resolved rank value came from.
type Source int

const (
	// SourceNone means no rank could be determined.
	SourceNone Source = iota

	// SourceObserved is a current rank reported by the leaderboard.
	SourceObserved

	// SourceHighest is the player's highest-known past rank.
	SourceHighest

	// SourceInterpolated is a rank interpolated from the ratings of
	// ranked players in the same leaderboard pool.
	SourceInterpolated
)

// Estimated reports whether the source marks an inferred value.
func (s Source) Estimated() bool {
	return s == SourceHighest || s == SourceInterpolated
}

// Ref is a (rating, rank) reference pair from a ranked player.
type Ref struct {
	Rating int
	Rank   int
}

// Rank resolves a display rank for a player.
//
// Preference order: the observed current rank; the highest-known past
// rank; a rank interpolated from the player's rating against the
// reference set. When none applies the rank stays unknown.
func Rank(rank, highest, rating *int, refs []Ref) (int, Source) {
	if rank != nil {
		return *rank, SourceObserved
	}
	if highest != nil {
		return *highest, SourceHighest
	}
	if rating != nil {
		if r, ok := Interpolate(refs, *rating); ok {
			return r, SourceInterpolated
		}
	}
	return 0, SourceNone
}

// Interpolate estimates a rank for the given rating from reference pairs.
// Between two references the rank is linearly interpolated; outside the
// reference range it is clamped to the nearest known rank rather than
// extrapolated along a trend. Returns false when no references exist.
func Interpolate(refs []Ref, rating int) (int, bool) {
	if len(refs) == 0 {
		return 0, false
	}

	sorted := make([]Ref, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rating < sorted[j].Rating })

	if rating <= sorted[0].Rating {
		return sorted[0].Rank, true
	}
	last := sorted[len(sorted)-1]
	if rating >= last.Rating {
		return last.Rank, true
	}

	for i := 1; i < len(sorted); i++ {
		lo, hi := sorted[i-1], sorted[i]
		if rating > hi.Rating {
			continue
		}
		if hi.Rating == lo.Rating {
			return lo.Rank, true
		}
		frac := float64(rating-lo.Rating) / float64(hi.Rating-lo.Rating)
		return lo.Rank + int(math.Round(frac*float64(hi.Rank-lo.Rank))), true
	}
	return last.Rank, true
}

// levelShares is the share of the ranked population per level for levels
// 14 down to 1, below the fixed top-200 brackets.
var levelShares = []int{6, 8, 6, 5, 10, 10, 10, 7, 7, 6, 5, 5, 5, 5}

// LevelFromRank derives the display level for a rank from the population
// curve of a leaderboard with rankTotal ranked players. Levels 20..16
// cover fixed top brackets; the remaining population is split by
// levelShares. Returns -1 when rank or total is unknown.
func LevelFromRank(rank, rankTotal int) int {
	if rank <= 0 || rankTotal <= 0 {
		return -1
	}

	switch {
	case rank <= 2:
		return 20
	case rank <= 13:
		return 19
	case rank <= 36:
		return 18
	case rank <= 80:
		return 17
	case rank <= 200:
		return 16
	}

	nTop := min(200, rankTotal)
	remain := rankTotal - nTop
	ranking := make([]int, 0, len(levelShares))
	for _, share := range levelShares {
		n := min(int(float64(rankTotal)*float64(share)/100+0.5), max(0, remain))
		ranking = append(ranking, remain+nTop)
		remain -= n
	}

	lvl := 0
	for lvl < len(ranking) && rank <= ranking[lvl] {
		lvl++
	}
	return lvl
}
