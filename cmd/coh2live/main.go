package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coh2live",
	Short: "Live CoH2 match detection and leaderboard stats",
	Long: `coh2live watches the Company of Heroes 2 log file, detects when a
multiplayer match starts and prints a table of leaderboard statistics
for every player in the match.

Ranks that could not be observed are estimated where possible and
marked as such in the output.

This is an unofficial tool and is not affiliated with Relic
Entertainment or SEGA.`,
	SilenceUsage: true, // Don't show usage on error
}

func init() {
	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coh2live %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
