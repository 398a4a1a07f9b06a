package coh2live

import (
	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
	"github.com/coh2live/coh2live-go/pkg/coh2live/report"
)

// Re-export the domain types for convenience. Users can import just
// "github.com/coh2live/coh2live-go/pkg/coh2live" and use coh2live.Match,
// coh2live.PlayerRecord, etc.

// Match is a detected multiplayer match.
type Match = match.Match

// MatchType is the match mode (1v1 through 4v4).
type MatchType = match.Type

// Player is one roster player of a match.
type Player = match.Player

// Faction is a playable CoH2 faction.
type Faction = match.Faction

// Signature is the stable identity of a match roster.
type Signature = match.Signature

// Report is the aggregated, display-ready result for one match.
type Report = report.Report

// PlayerRecord is one player's record within a report.
type PlayerRecord = report.PlayerRecord

// TeamAggregate is the averaged rank/level of one team.
type TeamAggregate = report.TeamAggregate

// Faction constants.
const (
	FactionWehrmacht = match.FactionWehrmacht
	FactionSoviet    = match.FactionSoviet
	FactionOKW       = match.FactionOKW
	FactionUSForces  = match.FactionUSForces
	FactionBritish   = match.FactionBritish
)
