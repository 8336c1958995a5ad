package asteroids

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld(t *testing.T) (*ecs.Storage, config.AsteroidsConfig) {
	t.Helper()
	cfg := config.DefaultAsteroidsConfig()
	storage := ecs.NewStorage(NewRegistry())
	AddSingletons(storage, cfg, 1)
	return storage, cfg
}

func singleton[T any](t *testing.T, storage *ecs.Storage) *T {
	t.Helper()
	var value *T
	require.True(t, storage.ReadSingleton(&value))
	return value
}

func count[T any](storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ C *T }](storage).Iter() {
		n++
	}
	return n
}

func TestSampleSpawnPoint(t *testing.T) {
	arena := NewArena(config.DefaultAsteroidsConfig().Arena)
	rng := NewRand(42)

	for range 1000 {
		p, err := SampleSpawnPoint(rng.Rand, arena.SpawnArea, arena.CenterArea, 64)
		require.NoError(t, err)
		assert.True(t, arena.SpawnArea.Contains(p), "%v outside spawn area", p)
		assert.False(t, arena.CenterArea.Contains(p), "%v inside exclusion zone", p)
	}

	_, err := SampleSpawnPoint(rng.Rand, arena.CenterArea, arena.SpawnArea, 10)
	assert.ErrorIs(t, err, ErrNoSpawnPoint)

	_, err = SampleSpawnPoint(rng.Rand, arena.SpawnArea, arena.CenterArea, 0)
	assert.ErrorIs(t, err, ErrNoSpawnPoint)
}

func TestSeek(t *testing.T) {
	t.Run("turn is capped", func(t *testing.T) {
		tr := geom.NewTransform(0, 0, 0)
		require.True(t, Seek(&tr, mgl32.Vec2{10, 0}, 0, 1, 0.1))
		assert.InDelta(t, -0.1, tr.Rotation, 1e-6)
	})

	t.Run("turn stops at the target heading", func(t *testing.T) {
		tr := geom.NewTransform(0, 0, 0)
		Seek(&tr, mgl32.Vec2{-10, 0}, 0, 50, 1)
		assert.InDelta(t, math.Pi/2, tr.Rotation, 1e-5)
	})

	t.Run("aligned mover still advances", func(t *testing.T) {
		tr := geom.NewTransform(0, 0, 2)
		require.True(t, Seek(&tr, mgl32.Vec2{0, 10}, 10, 3, 0.5))
		assert.InDelta(t, 0, tr.Rotation, 1e-6)
		assert.InDelta(t, 5, tr.Translation.Y(), 1e-5)
		assert.Equal(t, float32(2), tr.Translation.Z())
	})

	t.Run("target behind", func(t *testing.T) {
		tr := geom.NewTransform(0, 0, 0)
		Seek(&tr, mgl32.Vec2{0, -10}, 1, 100, 1)
		assertNear(t, mgl32.Vec2{0, -1}, tr.XY())
	})

	t.Run("on target does not move", func(t *testing.T) {
		tr := geom.NewTransform(3, 4, 0)
		assert.False(t, Seek(&tr, mgl32.Vec2{3, 4}, 50, 3, 1))
		assert.Equal(t, geom.NewTransform(3, 4, 0), tr)
	})

	t.Run("converges on a point", func(t *testing.T) {
		tr := geom.NewTransform(-500, 200, 0)
		target := mgl32.Vec2{0, 0}
		for range 60 * 20 {
			Seek(&tr, target, 50, 50, 1.0/60)
		}
		assert.Less(t, tr.XY().Len(), float32(5))
	})
}

func assertNear(t *testing.T, want, got mgl32.Vec2) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-4, "x of %v", got)
	assert.InDelta(t, want[1], got[1], 1e-4, "y of %v", got)
}

func TestSpawnerSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	storage.Spawn(rockSpawnerComponents(cfg)...)
	storage.Spawn(shipSpawnerComponents(cfg)...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SpawnerSystem{})

	for range 9 {
		scheduler.Once(0.5)
	}
	assert.Zero(t, count[Rock](storage))
	assert.Zero(t, count[Ship](storage))

	scheduler.Once(0.5)
	assert.Equal(t, 1, count[Rock](storage))
	assert.Equal(t, 1, count[Ship](storage))

	session := singleton[Session](t, storage)
	assert.Equal(t, 1, session.RocksSpawned)
	assert.Equal(t, 1, session.ShipsSpawned)

	// A long frame completes the timer several times.
	scheduler.Once(15)
	assert.Equal(t, 4, count[Rock](storage))
	assert.Equal(t, 4, count[Ship](storage))

	var reader ecs.EventReader[SpawnEvent]
	spawns := 0
	for range reader.Read(singleton[ecs.Events[SpawnEvent]](t, storage)) {
		spawns++
	}
	assert.Equal(t, 8, spawns)

	arena := singleton[Arena](t, storage)
	rocks := ecs.NewView[struct {
		*geom.Transform
		*Rock
		*MoveTo
		*Hostile
	}](storage)
	for rock := range rocks.Values() {
		assert.False(t, arena.CenterArea.Contains(rock.XY()))
		assert.True(t, arena.SpawnArea.Contains(rock.XY()))
		assert.Equal(t, MoveToPoint, rock.Mode)
		assert.Equal(t, cfg.Rocks.RotationSpeed, rock.RotationSpeed)
		assert.Contains(t, cfg.Rocks.Sizes, rock.Size)
		assert.Equal(t, float32(hostileLayer), rock.Translation.Z())
	}
}

func TestPlayerMovementSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	id := storage.Spawn(playerComponents(cfg)...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PlayerMovementSystem{})
	input := singleton[Input](t, storage)
	tr := ecs.ReadComponent[geom.Transform](storage, id)

	*input = Input{Thrust: true}
	scheduler.Once(0.5)
	assertNear(t, mgl32.Vec2{0, 50}, tr.XY())

	*input = Input{Left: true}
	scheduler.Once(0.1)
	assert.InDelta(t, 0.5, tr.Rotation, 1e-6)

	*input = Input{Left: true, Right: true}
	scheduler.Once(0.1)
	assert.InDelta(t, 0.5, tr.Rotation, 1e-6)

	// Thrusting to the right runs into the play area edge.
	tr.SetXY(mgl32.Vec2{590, 0})
	tr.Rotation = -math.Pi / 2
	*input = Input{Thrust: true}
	scheduler.Once(1)
	assertNear(t, mgl32.Vec2{600, 0}, tr.XY())
}

func TestSteeringSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	player := storage.Spawn(playerComponents(cfg)...)
	ship := storage.Spawn(shipComponents(cfg, mgl32.Vec2{-300, 0})...)
	rock := storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[0], mgl32.Vec2{300, 0})...)
	idle := storage.Spawn(geom.NewTransform(100, 100, 0), MoveTo{Mode: MoveNone, MovementSpeed: 10})

	ecs.ReadComponent[geom.Transform](storage, player).SetXY(mgl32.Vec2{-300, 200})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SteeringSystem{})
	for range 60 {
		scheduler.Once(1.0 / 60)
	}

	shipAt := ecs.ReadComponent[geom.Transform](storage, ship).XY()
	assert.InDelta(t, -300, shipAt.X(), 0.01)
	assert.InDelta(t, 50, shipAt.Y(), 0.01)

	rockAt := ecs.ReadComponent[geom.Transform](storage, rock).XY()
	assert.InDelta(t, 250, rockAt.Len(), 1)

	assertNear(t, mgl32.Vec2{-300, 200}, ecs.ReadComponent[geom.Transform](storage, player).XY())
	assertNear(t, mgl32.Vec2{100, 100}, ecs.ReadComponent[geom.Transform](storage, idle).XY())
}

func TestSteeringWithoutPlayer(t *testing.T) {
	storage, cfg := newTestWorld(t)
	ship := storage.Spawn(shipComponents(cfg, mgl32.Vec2{-300, 0})...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SteeringSystem{})
	scheduler.Once(1)

	assertNear(t, mgl32.Vec2{-300, 0}, ecs.ReadComponent[geom.Transform](storage, ship).XY())
}

func TestPlayerCollisionSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	cfg.Player.Health = 30
	player := storage.Spawn(playerComponents(cfg)...)
	first := storage.Spawn(shipComponents(cfg, mgl32.Vec2{30, 0})...)
	storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[0], mgl32.Vec2{500, 0})...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ResetDespawnedSystem{})
	scheduler.Register(&PlayerCollisionSystem{})
	scheduler.Once(1.0 / 60)

	health := ecs.ReadComponent[Health](storage, player)
	assert.Equal(t, 5, health.Current)
	assert.False(t, storage.Exists(first))
	assert.Equal(t, 1, count[Hostile](storage))

	session := singleton[Session](t, storage)
	assert.Equal(t, 1, session.HitsTaken)
	assert.False(t, session.GameOver)

	var reader ecs.EventReader[HitEvent]
	var hits []HitEvent
	for hit := range reader.Read(singleton[ecs.Events[HitEvent]](t, storage)) {
		hits = append(hits, hit)
	}
	require.Len(t, hits, 1)
	assert.Equal(t, HitEvent{Player: player, Attacker: first, Damage: cfg.Ships.Damage, Health: 5}, hits[0])

	storage.Spawn(shipComponents(cfg, mgl32.Vec2{0, -20})...)
	scheduler.Once(1.0 / 60)
	assert.Equal(t, 0, health.Current)
	assert.True(t, session.GameOver)
	assert.Equal(t, "destroyed", session.Reason)
}

func TestCoreDefenseSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	cfg.Spawners.Life = 2
	core := storage.Spawn(rockSpawnerComponents(cfg)...)
	storage.Spawn(shipSpawnerComponents(cfg)...)
	storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[0], mgl32.Vec2{10, 0})...)
	storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[1], mgl32.Vec2{0, 20})...)
	far := storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[0], mgl32.Vec2{300, 0})...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ResetDespawnedSystem{})
	scheduler.Register(&CoreDefenseSystem{})
	scheduler.Once(1.0 / 60)

	assert.Equal(t, 0, ecs.ReadComponent[Spawner](storage, core).Life)
	assert.Equal(t, 1, count[Rock](storage))
	assert.True(t, storage.Exists(far))

	session := singleton[Session](t, storage)
	assert.Equal(t, 2, session.CoreBreaches)
	assert.True(t, session.GameOver)
	assert.Equal(t, "core lost", session.Reason)
}

func TestHostileIsDespawnedOnce(t *testing.T) {
	storage, cfg := newTestWorld(t)
	storage.Spawn(playerComponents(cfg)...)
	core := storage.Spawn(rockSpawnerComponents(cfg)...)
	storage.Spawn(rockComponents(cfg, cfg.Rocks.Sizes[0], mgl32.Vec2{5, 5})...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ResetDespawnedSystem{})
	scheduler.Register(&PlayerCollisionSystem{})
	scheduler.Register(&CoreDefenseSystem{})
	scheduler.Once(1.0 / 60)

	session := singleton[Session](t, storage)
	assert.Equal(t, 1, session.HitsTaken)
	assert.Zero(t, session.CoreBreaches)
	assert.Equal(t, 1, session.Despawned)
	assert.Equal(t, cfg.Spawners.Life, ecs.ReadComponent[Spawner](storage, core).Life)
	assert.Zero(t, count[Rock](storage))
	assert.Equal(t, 1, singleton[Despawned](t, storage).Len())
}

func TestSessionSystem(t *testing.T) {
	storage, cfg := newTestWorld(t)
	core := storage.Spawn(rockSpawnerComponents(cfg)...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SessionSystem{})
	scheduler.Once(2.5)

	session := singleton[Session](t, storage)
	assert.InDelta(t, 2.5, session.Elapsed, 1e-9)

	session.end("destroyed")
	scheduler.Once(1)
	assert.InDelta(t, 2.5, session.Elapsed, 1e-9)
	assert.True(t, ecs.ReadComponent[Spawner](storage, core).Timer.Paused)
	assert.False(t, session.end("core lost"))
	assert.Equal(t, "destroyed", session.Reason)
}

func TestScore(t *testing.T) {
	tests := []struct {
		session Session
		want    int
	}{
		{Session{}, 0},
		{Session{Elapsed: 12.9}, 120},
		{Session{Elapsed: 60, HitsTaken: 2, CoreBreaches: 1}, 500},
		{Session{Elapsed: 3, HitsTaken: 4}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.session.Score())
	}
}

func TestHealthDamageClamps(t *testing.T) {
	h := Health{Current: 10, Max: 10}
	assert.False(t, h.Damage(4))
	assert.True(t, h.Damage(100))
	assert.Equal(t, 0, h.Current)
}
