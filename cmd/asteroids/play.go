package main

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/asteroids"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/scores"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagSeed   uint64
	flagDebug  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the arena window",
	Long: `Open the arena and play until the ship or the core is destroyed.

Controls:
  A/Left, D/Right  - Turn
  W/Up             - Thrust
  Esc              - Quit (the run is saved)`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom asteroids config YAML")
	playCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the ImGui stats overlay")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAsteroids(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	game, err := asteroids.NewGame(cfg, seed)
	if err != nil {
		return err
	}
	log.Info("arena ready", "seed", seed, "width", cfg.Arena.Width, "height", cfg.Arena.Height)

	window := newWindow(game, cfg, flagDebug)
	if err := ebiten.RunGame(window); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	session := game.Session()
	log.Info("run over", "score", session.Score(), "elapsed", session.Elapsed, "reason", session.Reason)
	saveRun(session, seed)
	return nil
}

// saveRun records the session. A missing database is not worth failing the run over.
func saveRun(session asteroids.Session, seed uint64) {
	store, err := scores.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	reason := session.Reason
	if reason == "" {
		reason = "quit"
	}
	if _, err := store.SaveRun(scores.RunResult{
		Game:         gameID,
		Score:        session.Score(),
		Elapsed:      time.Duration(session.Elapsed * float64(time.Second)),
		Hits:         session.HitsTaken,
		Breaches:     session.CoreBreaches,
		RocksSpawned: session.RocksSpawned,
		ShipsSpawned: session.ShipsSpawned,
		Reason:       reason,
		Seed:         seed,
	}); err != nil {
		log.Warn("could not save run", "error", err)
		return
	}

	if best, err := store.BestScore(gameID); err == nil {
		log.Info("saved run", "score", session.Score(), "best", best)
	}
}
