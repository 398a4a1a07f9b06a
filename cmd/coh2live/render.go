package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/coh2live/coh2live-go/pkg/coh2live/report"
)

var (
	axisColor     = color.New(color.FgRed)
	alliesColor   = color.New(color.FgBlue)
	estimateColor = color.New(color.FgYellow)
)

// renderReport prints the aggregated match table. Estimated ranks carry
// a "*" marker, unknown values render as "-" so they are never mistaken
// for observed zeros.
func renderReport(w io.Writer, rep *report.Report) {
	fmt.Fprintf(w, "\n%s match, %d players\n\n", rep.Match.Type, len(rep.AllRecords()))

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("TEAM", "NAME", "FACTION", "PRE", "RANK", "LVL", "STREAK", "W%", "DROP%", "GAMES", "COUNTRY")

	for team := 0; team < 2; team++ {
		for i := range rep.Records[team] {
			appendRecord(table, &rep.Records[team][i])
		}
	}
	table.Append("", "", "", "", "", "", "", "", "", "", "")
	for team := 0; team < 2; team++ {
		table.Append(
			strconv.Itoa(team+1),
			"Team average",
			"", "",
			formatAvg(rep.Teams[team].AvgRank),
			formatAvg(rep.Teams[team].AvgLevel),
			"", "", "", "", "",
		)
	}
	for team := 0; team < 2; team++ {
		for i := range rep.Premades[team] {
			pm := &rep.Premades[team][i]
			table.Append(
				strconv.Itoa(team+1),
				fmt.Sprintf("Arranged team of %d", len(pm.Members)),
				"",
				premadeLabel(&i),
				formatOpt(pm.Rank),
				formatOpt(pm.RankLevel),
				"", "", "", "", "",
			)
		}
	}
	table.Render()
}

func appendRecord(table *tablewriter.Table, rec *report.PlayerRecord) {
	name := rec.Player.Name
	if rec.Alias != "" {
		name = rec.Alias
	}

	factionColor := alliesColor
	if rec.Player.Faction.IsAxis() {
		factionColor = axisColor
	}

	if rec.Unavailable {
		table.Append(
			strconv.Itoa(rec.Player.Team+1),
			name,
			factionColor.Sprint(rec.Player.Faction),
			"-", "-", "-", "-", "-", "-", "-", "-",
		)
		return
	}

	table.Append(
		strconv.Itoa(rec.Player.Team+1),
		name,
		factionColor.Sprint(rec.Player.Faction),
		premadeLabel(rec.Premade),
		formatRank(rec),
		formatOpt(rec.RankLevel),
		formatStreak(rec.Streak),
		formatRatio(rec.WinRatio()),
		formatRatio(rec.DropRatio()),
		strconv.Itoa(rec.NumGames()),
		rec.Country,
	)
}

// premadeLabel letters the arranged teams of a side (A, B, ...).
func premadeLabel(idx *int) string {
	if idx == nil {
		return "-"
	}
	return string(rune('A' + *idx))
}

func formatRank(rec *report.PlayerRecord) string {
	if rec.Rank == nil {
		return "-"
	}
	if rec.RankEstimated {
		return estimateColor.Sprintf("*%d", *rec.Rank)
	}
	return strconv.Itoa(*rec.Rank)
}

func formatOpt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatStreak(streak int) string {
	switch {
	case streak > 0:
		return fmt.Sprintf("+%d", streak)
	case streak < 0:
		return strconv.Itoa(streak)
	}
	return "-"
}

func formatRatio(ratio float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", ratio*100)
}

func formatAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
