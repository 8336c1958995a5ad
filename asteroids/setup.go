package asteroids

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

// Draw order of each kind of entity.
const (
	spawnerLayer     = 0
	playerLayer      = 1
	hostileLayer     = 2
	shipSpawnerLayer = 3
)

// Setup inserts the arena singletons and spawns the player and both spawners at the origin.
func Setup(storage *ecs.Storage, cfg config.AsteroidsConfig, seed uint64) {
	AddSingletons(storage, cfg, seed)

	storage.Spawn(playerComponents(cfg)...)
	storage.Spawn(rockSpawnerComponents(cfg)...)
	storage.Spawn(shipSpawnerComponents(cfg)...)
}

// AddSingletons inserts everything the arena systems read, without spawning entities.
func AddSingletons(storage *ecs.Storage, cfg config.AsteroidsConfig, seed uint64) {
	storage.AddSingleton(cfg)
	storage.AddSingleton(NewArena(cfg.Arena))
	storage.AddSingleton(Input{})
	storage.AddSingleton(Session{})
	storage.AddSingleton(NewDespawned())
	storage.AddSingleton(NewRand(seed))
	ecs.AddEvents[HitEvent](storage)
	ecs.AddEvents[BreachEvent](storage)
	ecs.AddEvents[SpawnEvent](storage)
}

func playerComponents(cfg config.AsteroidsConfig) []any {
	return []any{
		geom.NewTransform(0, 0, playerLayer),
		Collider{Shape: geom.NewCircle(cfg.Player.Radius)},
		Player{
			MovementSpeed: cfg.Player.MovementSpeed,
			RotationSpeed: cfg.Player.RotationSpeed,
		},
		Health{Current: cfg.Player.Health, Max: cfg.Player.Health},
	}
}

func rockSpawnerComponents(cfg config.AsteroidsConfig) []any {
	return []any{
		geom.NewTransform(0, 0, spawnerLayer),
		Collider{Shape: geom.NewCircle(cfg.Spawners.RockRadius)},
		Spawner{
			Kind:  SpawnRocks,
			Timer: ecs.TimerFromSeconds(cfg.Rocks.SpawnInterval, ecs.TimerRepeating),
			Sizes: slices.Clone(cfg.Rocks.Sizes),
			Life:  cfg.Spawners.Life,
		},
	}
}

func shipSpawnerComponents(cfg config.AsteroidsConfig) []any {
	return []any{
		geom.NewTransform(0, 0, shipSpawnerLayer),
		Collider{Shape: geom.NewCircle(cfg.Spawners.ShipRadius)},
		Spawner{
			Kind:  SpawnShips,
			Timer: ecs.TimerFromSeconds(cfg.Ships.SpawnInterval, ecs.TimerRepeating),
		},
	}
}

// rockComponents builds a rock of the given size that heads for the origin.
func rockComponents(cfg config.AsteroidsConfig, size config.RockSize, at mgl32.Vec2) []any {
	return []any{
		geom.NewTransform(at[0], at[1], hostileLayer),
		Collider{Shape: geom.NewCircle(size.Radius)},
		Rock{Size: size},
		Hostile{Damage: cfg.Rocks.Damage},
		MoveTo{
			Mode:          MoveToPoint,
			MovementSpeed: cfg.Rocks.MovementSpeed,
			RotationSpeed: cfg.Rocks.RotationSpeed,
		},
	}
}

// shipComponents builds a ship that chases the player.
func shipComponents(cfg config.AsteroidsConfig, at mgl32.Vec2) []any {
	return []any{
		geom.NewTransform(at[0], at[1], hostileLayer),
		Collider{Shape: geom.NewCircle(cfg.Ships.Radius)},
		Ship{},
		Hostile{Damage: cfg.Ships.Damage},
		MoveTo{
			Mode:          MoveToPlayer,
			MovementSpeed: cfg.Ships.MovementSpeed,
			RotationSpeed: cfg.Ships.RotationSpeed,
		},
	}
}
