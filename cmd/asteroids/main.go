// asteroids is a top-down survival arena: steer the ship, dodge the rocks and hunter
// ships, and keep them away from the core.
//
// Usage:
//
//	asteroids play            - Open the arena window
//	asteroids scores          - Show the best runs
//
// Global flags:
//
//	--db <path>          - Scores database (default: ~/.skirmish/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/scores"
	"github.com/spf13/cobra"
)

// gameID names asteroids runs in the scores database.
const gameID = "asteroids"

var (
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Survive the rocks and hunter ships",
	Long: `Steer a ship around the arena while spawners at the edges send rocks at
the core and hunter ships after you.

Examples:
  asteroids play
  asteroids play --seed 42 --debug
  asteroids scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.ConfigureLogging(flagLogLevel, gameID)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", scores.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
}
