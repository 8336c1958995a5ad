package asteroids

import (
	"errors"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

// ErrNoSpawnPoint is returned when every sampled point fell inside the exclusion zone.
var ErrNoSpawnPoint = errors.New("no spawn point outside the exclusion zone")

// SampleSpawnPoint draws uniform points in spawn until one lies outside exclude.
func SampleSpawnPoint(rng *rand.Rand, spawn, exclude geom.Rect, maxAttempts int) (mgl32.Vec2, error) {
	leftTop, leftBottom, rightTop, _ := geom.Corners(spawn.Center(), 0, spawn.Size())
	x0, x1 := leftTop[0], rightTop[0]
	y0, y1 := leftBottom[1], leftTop[1]

	for range maxAttempts {
		p := mgl32.Vec2{
			x0 + rng.Float32()*(x1-x0),
			y0 + rng.Float32()*(y1-y0),
		}
		if !exclude.Contains(p) {
			return p, nil
		}
	}
	return mgl32.Vec2{}, ErrNoSpawnPoint
}

// SpawnerSystem ticks every spawner on the frame clock and queues one hostile per
// timer completion.
type SpawnerSystem struct {
	Spawners ecs.Query[struct {
		*Spawner
		*geom.Transform
	}]
	Config  ecs.Singleton[config.AsteroidsConfig]
	Arena   ecs.Singleton[Arena]
	Rand    ecs.Singleton[Rand]
	Session ecs.Singleton[Session]
	Spawns  ecs.Singleton[ecs.Events[SpawnEvent]]
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	arena := s.Arena.Get()
	rng := s.Rand.Get()
	session := s.Session.Get()
	if cfg == nil || arena == nil || rng == nil || session == nil {
		return
	}
	events := s.Spawns.Get()

	for spawner := range s.Spawners.Values() {
		spawner.Timer.Tick(frame.DeltaTime)

		for range spawner.Timer.TimesFinishedThisTick() {
			at, err := SampleSpawnPoint(rng.Rand, arena.SpawnArea, arena.CenterArea, cfg.Spawners.MaxAttempts)
			if err != nil {
				log.Warn("spawner skipped", "kind", spawner.Kind, "err", err)
				continue
			}

			switch spawner.Kind {
			case SpawnRocks:
				if len(spawner.Sizes) == 0 {
					continue
				}
				size := spawner.Sizes[rng.IntN(len(spawner.Sizes))]
				frame.Commands.Spawn(rockComponents(*cfg, size, at)...)
				session.RocksSpawned++
				log.Debug("spawned rock", "at", at, "radius", size.Radius)
			case SpawnShips:
				frame.Commands.Spawn(shipComponents(*cfg, at)...)
				session.ShipsSpawned++
				log.Debug("spawned ship", "at", at)
			default:
				continue
			}

			if events != nil {
				events.Send(SpawnEvent{Kind: spawner.Kind, At: at})
			}
		}
	}
}
