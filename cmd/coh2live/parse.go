package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coh2live/coh2live-go/internal/aggregate"
	"github.com/coh2live/coh2live-go/internal/config"
	"github.com/coh2live/coh2live-go/internal/logfinder"
	"github.com/coh2live/coh2live-go/internal/relic"
	"github.com/coh2live/coh2live-go/pkg/coh2live"
)

var (
	// parse flags
	parseLogFile string
	parseFetch   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an existing CoH2 log (batch mode)",
	Long: `Parse an existing CoH2 log file and print the last complete multiplayer
match it records.

Unlike 'watch', this command processes a file once without following it.
With --fetch, leaderboard stats are fetched for the roster; otherwise
only the roster itself is printed.

Examples:
  # Last match of the auto-detected log
  coh2live parse

  # Specific file, with stats
  coh2live parse --fetch warnings.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseLogFile, "logfile", "f", "",
		"CoH2 log file (auto-detected if not specified)")
	parseCmd.Flags().BoolVar(&parseFetch, "fetch", false,
		"Fetch leaderboard stats for the roster")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := parseLogFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		found, err := logfinder.FindLogFile("")
		if err != nil {
			return err
		}
		path = found
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m, err := coh2live.LastMatch(ctx, path)
	if err != nil {
		return err
	}
	if m == nil {
		fmt.Println("No multiplayer match found in log.")
		return nil
	}

	stats := make([]relic.PlayerStats, len(m.Players()))
	if parseFetch {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		var logger *slog.Logger
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
		client := relic.NewClient(cfg.Stats, logger)
		if err := client.InitLeaderboards(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: leaderboard init failed: %v\n", err)
		}
		stats = client.FetchMatch(ctx, m)
	} else {
		for i, p := range m.Players() {
			stats[i] = relic.PlayerStats{ProfileID: p.ProfileID, Prestige: -1}
		}
	}

	renderReport(os.Stdout, aggregate.Build(m, stats))
	return nil
}
