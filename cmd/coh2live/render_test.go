package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/coh2live/coh2live-go/pkg/coh2live/match"
	"github.com/coh2live/coh2live-go/pkg/coh2live/report"
)

func intp(v int) *int { return &v }

func testReport(t *testing.T) *report.Report {
	t.Helper()
	m, err := match.New([]match.RosterEntry{
		{Slot: 0, Name: "Alice", ProfileID: 1, Team: 0, Faction: match.FactionWehrmacht},
		{Slot: 1, Name: "Bob", ProfileID: 2, Team: 1, Faction: match.FactionSoviet},
	})
	if err != nil {
		t.Fatal(err)
	}

	avgRank := 150.0
	rep := &report.Report{Match: m}
	rep.Records[0] = []report.PlayerRecord{{
		Player:   m.Teams[0][0],
		Alias:    "xXAliceXx",
		Country:  "de",
		Prestige: 120,
		Wins:     60, Losses: 40, Drops: 2, Streak: 3,
		Rank:      intp(150),
		RankLevel: intp(12),
	}}
	rep.Records[1] = []report.PlayerRecord{{
		Player:      m.Teams[1][0],
		Unavailable: true,
		Prestige:    -1,
	}}
	rep.Teams[0] = report.TeamAggregate{AvgRank: &avgRank}
	return rep
}

func TestRenderReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	renderReport(&buf, testReport(t))
	out := buf.String()

	for _, want := range []string{
		"1v1 match, 2 players",
		"xXAliceXx", // alias preferred over the log name
		"Bob",
		"Wehrmacht",
		"150",
		"+3",  // win streak
		"60%", // win ratio
		"100", // games
		"de",
		"Team average",
		"150.0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "*150") {
		t.Error("observed rank rendered with estimate marker")
	}
}

func TestRenderReport_EstimatedMarker(t *testing.T) {
	color.NoColor = true

	rep := testReport(t)
	rep.Records[0][0].RankEstimated = true

	var buf bytes.Buffer
	renderReport(&buf, rep)
	if !strings.Contains(buf.String(), "*150") {
		t.Errorf("estimated rank missing marker:\n%s", buf.String())
	}
}

func TestRenderReport_PremadeRows(t *testing.T) {
	color.NoColor = true

	rep := testReport(t)
	idx := 0
	rep.Records[0][0].Premade = &idx
	rep.Premades[0] = []report.PremadeTeam{{
		Members:   []int64{1, 2},
		Rank:      intp(12),
		RankLevel: intp(16),
	}}

	var buf bytes.Buffer
	renderReport(&buf, rep)
	out := buf.String()

	for _, want := range []string{"Arranged team of 2", "A", "12", "16"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	rec := &report.PlayerRecord{Wins: 3, Losses: 1}

	if got := formatRatio(rec.WinRatio()); got != "75%" {
		t.Errorf("win ratio = %q, want 75%%", got)
	}
	if got := formatRatio((&report.PlayerRecord{}).WinRatio()); got != "-" {
		t.Errorf("undefined ratio = %q, want -", got)
	}
	if got := formatStreak(-4); got != "-4" {
		t.Errorf("loss streak = %q, want -4", got)
	}
	if got := formatStreak(0); got != "-" {
		t.Errorf("broken streak = %q, want -", got)
	}
	if got := formatOpt(nil); got != "-" {
		t.Errorf("nil optional = %q, want -", got)
	}
	if got := formatAvg(nil); got != "-" {
		t.Errorf("nil average = %q, want -", got)
	}
	if got := premadeLabel(nil); got != "-" {
		t.Errorf("solo label = %q, want -", got)
	}
	one := 1
	if got := premadeLabel(&one); got != "B" {
		t.Errorf("premade label = %q, want B", got)
	}
}
