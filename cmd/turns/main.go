// turns is a turn-based battle between a four-member party and a pair of enemies.
//
// Usage:
//
//	turns            - Open the battle window
//	turns history    - Show recent battles
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/scores"
	"github.com/plus3/skirmish/turns"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLimit    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turns",
	Short: "Fight a turn-based battle",
	Long: `Open the battle window. Participants act lowest health first.

Controls:
  Enter  - Start the battle
  1      - Attack
  2      - Cast a fire spell
  3      - Defend
  4      - Pass
  Esc    - Quit (the battle is saved)`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.ConfigureLogging(flagLogLevel, "turns")
	},
	RunE: runBattle,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent battles",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", scores.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom battle config YAML")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of battles to show")

	rootCmd.AddCommand(historyCmd)
}

func runBattle(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadTurns(flagConfig)
	if err != nil {
		return err
	}
	battle, err := turns.NewBattle(cfg)
	if err != nil {
		return err
	}

	window, err := newWindow(battle)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Turns")
	if err := ebiten.RunGame(window); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	if window.started {
		saveBattle(battle.Result())
	}
	return nil
}

func saveBattle(result turns.Result) {
	store, err := scores.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	winner := "none"
	if result.Over {
		winner = result.Winner.String()
	}
	if _, err := store.SaveBattle(scores.BattleResult{
		Winner:    winner,
		Rounds:    result.Rounds,
		Turns:     result.Turns,
		Survivors: result.Survivors,
		Duration:  result.Duration,
	}); err != nil {
		log.Warn("could not save battle", "error", err)
		return
	}
	log.Info("saved battle", "winner", winner, "rounds", result.Rounds)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := scores.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	battles, err := store.RecentBattles(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(battles) == 0 {
		fmt.Fprintln(out, "No battles recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-16s  %-7s  %-6s  %-5s  %s\n", "Date", "Winner", "Rounds", "Turns", "Survivors")
	for _, b := range battles {
		fmt.Fprintf(out, "  %-16s  %-7s  %-6d  %-5d  %s\n",
			b.CreatedAt.Format("2006-01-02 15:04"), b.Winner, b.Rounds, b.Turns, strings.Join(b.Survivors, ", "))
	}
	return nil
}
