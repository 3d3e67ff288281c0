// parkour is an endless runner for the terminal, a window or an SSH session.
//
// Usage:
//
//	parkour list                 - List game variants
//	parkour play [variant]       - Play a variant (menu when omitted)
//	parkour patterns             - Show the obstacle pattern catalog
//	parkour sim                  - Run a headless simulation
//	parkour replays ...          - List, verify, browse or delete recorded runs
//	parkour serve                - Start SSH server for remote play
//	parkour settings ...         - Show or change saved preferences
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.parkour/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Registers every runner variant
	_ "github.com/vovakirdan/parkour/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "parkour",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parkour",
	Short: "Parkour - an endless runner in your terminal",
	Long: `Parkour is an endless runner: jump over boxes and anvils, land on
top of them, collect coins and see how far you get.

Available commands:
  list      - Show all game variants
  play      - Play a variant in the terminal or a window
  patterns  - Show the obstacle pattern catalog
  sim       - Simulate a run without a screen
  replays   - Manage recorded runs
  serve     - Start SSH server for remote play
  settings  - Show or change saved preferences

Examples:
  parkour list
  parkour play
  parkour play hold --difficulty hard
  parkour play --gui --record
  parkour sim --seconds 60 --autopilot
  parkour serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.parkour/runs.db", "Path to the recorded runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
}
