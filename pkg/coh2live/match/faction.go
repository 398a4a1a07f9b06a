package match

// Faction is a playable CoH2 faction.
type Faction int

const (
	FactionWehrmacht Faction = iota
	FactionSoviet
	FactionOKW
	FactionUSForces
	FactionBritish
)

// allFactions is the canonical list of factions in Relic ID order.
var allFactions = []Faction{
	FactionWehrmacht,
	FactionSoviet,
	FactionOKW,
	FactionUSForces,
	FactionBritish,
}

// factionByLogKey maps log file identifiers to factions.
// Built once from allFactions at package initialization.
var factionByLogKey = func() map[string]Faction {
	m := make(map[string]Faction, len(allFactions))
	for _, f := range allFactions {
		m[f.LogKey()] = f
	}
	return m
}()

// FactionFromLogKey returns the faction identified by its log file key
// (e.g. "german", "soviet"). Returns false for unknown keys.
func FactionFromLogKey(key string) (Faction, bool) {
	f, ok := factionByLogKey[key]
	return f, ok
}

// LogKeys returns the faction identifiers as they appear in the log file.
func LogKeys() []string {
	keys := make([]string, len(allFactions))
	for i, f := range allFactions {
		keys[i] = f.LogKey()
	}
	return keys
}

// RelicID is the faction ID as used by the Relic leaderboard API.
func (f Faction) RelicID() int { return int(f) }

// LogKey is the faction identifier used in the log file.
func (f Faction) LogKey() string {
	switch f {
	case FactionWehrmacht:
		return "german"
	case FactionSoviet:
		return "soviet"
	case FactionOKW:
		return "west_german"
	case FactionUSForces:
		return "aef"
	case FactionBritish:
		return "british"
	}
	return ""
}

func (f Faction) String() string {
	switch f {
	case FactionWehrmacht:
		return "Wehrmacht"
	case FactionSoviet:
		return "Soviet Union"
	case FactionOKW:
		return "Oberkommando West"
	case FactionUSForces:
		return "US Forces"
	case FactionBritish:
		return "British Forces"
	}
	return "unknown"
}

// IsAxis reports whether the faction fights for the Axis side.
func (f Faction) IsAxis() bool {
	return f == FactionWehrmacht || f == FactionOKW
}

// TeamFaction is what Relic considers a faction: Axis or Allies.
type TeamFaction int

const (
	TeamAxis TeamFaction = iota
	TeamAllies
)

// TeamFaction returns the side the faction belongs to.
func (f Faction) TeamFaction() TeamFaction {
	if f.IsAxis() {
		return TeamAxis
	}
	return TeamAllies
}

func (t TeamFaction) String() string {
	if t == TeamAxis {
		return "Axis"
	}
	return "Allies"
}
