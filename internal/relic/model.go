package relic

// LeaderboardStats are one player's statistics on one leaderboard.
// Optional fields are pointers; the API reports -1 for missing ranks and
// those are mapped to nil rather than carried as sentinel values.
type LeaderboardStats struct {
	LeaderboardID int

	Wins   int
	Losses int
	Drops  int

	// Streak is signed: positive for a win streak, negative for a loss
	// streak, 0 when broken or unknown.
	Streak int

	Rating           *int
	Rank             *int
	RankLevel        *int
	HighestRank      *int
	HighestRankLevel *int
	RankTotal        *int
}

// TeamStats are the statistics of one pre-made team the player belongs
// to, on one team leaderboard.
type TeamStats struct {
	LeaderboardID int

	// Members are the profile IDs of the arranged team, sorted.
	Members []int64

	Wins   int
	Losses int

	Rank        *int
	RankLevel   *int
	HighestRank *int
	RankTotal   *int
}

// PlayerStats is the fetched result for one match player.
type PlayerStats struct {
	ProfileID int64

	// Identity data from the profile's stat group.
	Alias        string
	SteamProfile string
	Country      string
	Prestige     int

	// Stats for the leaderboard applicable to this match, or nil when
	// the fetch settled unavailable.
	Stats *LeaderboardStats

	// Teams are the pre-made teams the player is a member of. Which of
	// them applies to a given match is decided during aggregation.
	Teams []TeamStats
}

// Available reports whether the stats fetch for this player succeeded.
func (p *PlayerStats) Available() bool {
	return p.Stats != nil
}

// personalStatResponse is the subset of the GetPersonalStat payload the
// pipeline consumes.
type personalStatResponse struct {
	StatGroups       []statGroup       `json:"statGroups"`
	LeaderboardStats []leaderboardStat `json:"leaderboardStats"`
}

type statGroup struct {
	ID      int64    `json:"id"`
	Type    int      `json:"type"`
	Members []member `json:"members"`
}

type member struct {
	ProfileID int64  `json:"profile_id"`
	Alias     string `json:"alias"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Country   string `json:"country"`
}

type leaderboardStat struct {
	StatGroupID      int64 `json:"statgroup_id"`
	LeaderboardID    int   `json:"leaderboard_id"`
	Wins             int   `json:"wins"`
	Losses           int   `json:"losses"`
	Streak           int   `json:"streak"`
	Drops            int   `json:"drops"`
	Rank             int   `json:"rank"`
	RankTotal        int   `json:"ranktotal"`
	RankLevel        int   `json:"ranklevel"`
	HighestRank      int   `json:"highestrank"`
	HighestRankLevel int   `json:"highestranklevel"`
	Rating           int   `json:"rating"`
}

// leaderboardResponse is the subset of the getleaderboard2 payload used
// to initialize rank totals.
type leaderboardResponse struct {
	RankTotal int `json:"rankTotal"`
}

// optPositive maps the API's -1/0 "no value" convention to an optional.
func optPositive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
