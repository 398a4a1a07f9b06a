package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coh2live/coh2live-go/internal/config"
	"github.com/coh2live/coh2live-go/pkg/coh2live"
)

var (
	// watch flags
	logFile        string
	concurrency    int64
	retries        uint64
	backoffBase    time.Duration
	requestTimeout time.Duration
	fetchTimeout   time.Duration
	replay         bool
	pollTail       bool
	noBell         bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the CoH2 log and print stats for each new match",
	Long: `Watch the CoH2 log file in real-time. When a multiplayer match starts,
fetch leaderboard statistics for every player and print a match table.

A terminal bell rings when a new match is detected, before the stats
arrive.

Examples:
  # Watch with default settings (auto-detect log file)
  coh2live watch

  # Specify the log file
  coh2live watch --logfile "C:\Users\me\Documents\My Games\Company of Heroes 2\warnings.log"

  # Replay the whole log before following it
  coh2live watch --replay

  # Tighter API limits
  coh2live watch --concurrency 4 --fetch-timeout 30s`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&logFile, "logfile", "f", "",
		"CoH2 log file (auto-detected if not specified)")
	watchCmd.Flags().Int64Var(&concurrency, "concurrency", 0,
		"Maximum in-flight API requests per match")
	watchCmd.Flags().Uint64Var(&retries, "retries", 0,
		"Retries per API request after transient failures")
	watchCmd.Flags().DurationVar(&backoffBase, "backoff", 0,
		"Initial retry backoff interval")
	watchCmd.Flags().DurationVar(&requestTimeout, "request-timeout", 0,
		"Timeout for a single API request")
	watchCmd.Flags().DurationVar(&fetchTimeout, "fetch-timeout", 0,
		"Overall timeout for fetching one match's stats")
	watchCmd.Flags().BoolVar(&replay, "replay", false,
		"Read the log from the start instead of only new content")
	watchCmd.Flags().BoolVar(&pollTail, "poll", false,
		"Poll the log file instead of using filesystem notifications")
	watchCmd.Flags().BoolVar(&noBell, "no-bell", false,
		"Disable the terminal bell on match detection")
}

// buildOptions merges environment configuration with flag overrides.
func buildOptions(cmd *cobra.Command) ([]coh2live.Option, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Stats.MaxConcurrent = concurrency
	}
	if cmd.Flags().Changed("retries") {
		cfg.Stats.RetryCount = retries
	}
	if cmd.Flags().Changed("backoff") {
		cfg.Stats.BackoffBase = backoffBase
	}
	if cmd.Flags().Changed("request-timeout") {
		cfg.Stats.RequestTimeout = requestTimeout
	}
	if cmd.Flags().Changed("fetch-timeout") {
		cfg.Stats.FetchTimeout = fetchTimeout
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []coh2live.Option{
		coh2live.WithMaxConcurrent(cfg.Stats.MaxConcurrent),
		coh2live.WithRetryCount(cfg.Stats.RetryCount),
		coh2live.WithBackoffBase(cfg.Stats.BackoffBase),
		coh2live.WithRequestTimeout(cfg.Stats.RequestTimeout),
		coh2live.WithFetchTimeout(cfg.Stats.FetchTimeout),
	}
	if cfg.LogFile != "" {
		opts = append(opts, coh2live.WithLogFile(cfg.LogFile))
	}
	if replay {
		opts = append(opts, coh2live.WithReplayFromStart())
	}
	if pollTail {
		opts = append(opts, coh2live.WithPollTail())
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, coh2live.WithLogger(logger))
	}
	return opts, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := coh2live.NewWatcher(opts...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	reports, notices, errs := watcher.Watch(ctx)

	fmt.Println("Waiting for a match...")
	for {
		select {
		case rep, ok := <-reports:
			if !ok {
				return nil
			}
			renderReport(os.Stdout, rep)

		case notice, ok := <-notices:
			if !ok {
				return nil
			}
			if !noBell {
				fmt.Print("\a")
			}
			fmt.Printf("New %s match detected, fetching stats...\n", notice.Type)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)

		case <-ctx.Done():
			return nil
		}
	}
}
