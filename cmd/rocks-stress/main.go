// Command rocks-stress runs headless asteroids arenas back to back with scripted input
// and prints a timing and memory report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/skirmish/asteroids"
	"github.com/plus3/skirmish/config"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock time to keep running arenas.")
	frameDt := flag.Float64("dt", 1.0/60.0, "Simulated seconds per frame.")
	seed := flag.Uint64("seed", 1, "Seed of the first arena; each restart adds one.")
	configPath := flag.String("config", "", "Path to an asteroids YAML config.")
	spawnScale := flag.Float64("spawn-scale", 1, "Divides both spawn intervals, for denser arenas.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := config.LoadAsteroids(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if *spawnScale > 0 {
		cfg.Rocks.SpawnInterval /= *spawnScale
		cfg.Ships.SpawnInterval /= *spawnScale
	}

	log.Info("starting asteroids stress test", "duration", *duration, "seed", *seed)

	report := &Report{
		Duration:       *duration,
		FrameDt:        time.Duration(*frameDt * float64(time.Second)),
		Seed:           *seed,
		SpawnScale:     *spawnScale,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	game, err := asteroids.NewGame(cfg, *seed)
	if err != nil {
		log.Fatal("failed to create arena", "err", err)
	}
	report.Arenas = 1

	var frame int
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		step := game.Step(*frameDt, scriptedInput(frame))
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(updateStart))
		frame++

		report.TotalFrames++
		report.FixedSteps += int64(step.FixedSteps)
		report.Hits += len(step.Hits)
		report.Breaches += len(step.Breaches)
		report.Spawns += len(step.Spawns)
		report.PeakEntities = max(report.PeakEntities, game.Storage().Len())

		if game.Over() {
			report.finishArena(game.Session())
			log.Info("arena over", "arena", report.Arenas, "reason", game.Session().Reason, "score", game.Session().Score())

			game, err = asteroids.NewGame(cfg, *seed+uint64(report.Arenas))
			if err != nil {
				log.Fatal("failed to create arena", "err", err)
			}
			report.Arenas++
			frame = 0
		}
	}

	report.finishArena(game.Session())
	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", "arenas", report.Arenas, "frames", report.TotalFrames)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", "err", err)
	}
	fmt.Println("--- End of Report ---")
}

// scriptedInput thrusts in bursts and alternates turning, so the player sweeps the
// play area instead of sitting in the center.
func scriptedInput(frame int) asteroids.Input {
	phase := frame % 240
	return asteroids.Input{
		Thrust: phase%60 < 40,
		Left:   phase < 90,
		Right:  phase >= 150 && phase < 200,
	}
}
