package asteroids

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

// Game wires one arena: a frame schedule for the spawners and a fixed-rate schedule
// for movement, steering and collision.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	fixed   *ecs.Scheduler
	step    *ecs.FixedStep

	input   *ecs.Singleton[Input]
	session *ecs.Singleton[Session]
	hits    *ecs.Singleton[ecs.Events[HitEvent]]
	breach  *ecs.Singleton[ecs.Events[BreachEvent]]
	spawns  *ecs.Singleton[ecs.Events[SpawnEvent]]

	hitReader    ecs.EventReader[HitEvent]
	breachReader ecs.EventReader[BreachEvent]
	spawnReader  ecs.EventReader[SpawnEvent]
}

// StepReport counts what happened during one Step.
type StepReport struct {
	FixedSteps int
	Hits       []HitEvent
	Breaches   []BreachEvent
	Spawns     []SpawnEvent
}

// NewGame validates cfg and builds a ready-to-run arena.
func NewGame(cfg config.AsteroidsConfig, seed uint64) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("asteroids: %w", err)
	}

	storage := ecs.NewStorage(NewRegistry())
	Setup(storage, cfg, seed)

	g := &Game{
		storage: storage,
		update:  ecs.NewScheduler(storage),
		fixed:   ecs.NewScheduler(storage),
		input:   ecs.NewSingleton[Input](storage),
		session: ecs.NewSingleton[Session](storage),
		hits:    ecs.AddEvents[HitEvent](storage),
		breach:  ecs.AddEvents[BreachEvent](storage),
		spawns:  ecs.AddEvents[SpawnEvent](storage),
	}

	g.fixed.Register(&ResetDespawnedSystem{})
	g.fixed.Register(&PlayerMovementSystem{})
	g.fixed.Register(&SteeringSystem{})
	g.fixed.Register(&PlayerCollisionSystem{})
	g.fixed.Register(&CoreDefenseSystem{})
	g.fixed.Register(&SessionSystem{})
	g.step = ecs.NewFixedStep(g.fixed, cfg.Arena.FixedHz)

	g.update.Register(&ecs.EventUpdateSystem[HitEvent]{})
	g.update.Register(&ecs.EventUpdateSystem[BreachEvent]{})
	g.update.Register(&ecs.EventUpdateSystem[SpawnEvent]{})
	g.update.Register(&SpawnerSystem{})

	return g, nil
}

// Step advances the arena by one rendered frame of dt seconds.
func (g *Game) Step(dt float64, input Input) StepReport {
	*g.input.Get() = input

	report := StepReport{FixedSteps: g.step.Advance(dt)}
	g.update.Once(dt)

	for hit := range g.hitReader.Read(g.hits.Get()) {
		report.Hits = append(report.Hits, hit)
	}
	for breach := range g.breachReader.Read(g.breach.Get()) {
		report.Breaches = append(report.Breaches, breach)
	}
	for spawn := range g.spawnReader.Read(g.spawns.Get()) {
		report.Spawns = append(report.Spawns, spawn)
	}
	return report
}

func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Schedulers exposes both schedules for the stats overlay.
func (g *Game) Schedulers() (update, fixed *ecs.Scheduler) {
	return g.update, g.fixed
}

func (g *Game) Session() Session {
	return *g.session.Get()
}

func (g *Game) Over() bool {
	return g.session.Get().GameOver
}

// PlayerState is the renderable part of the player.
type PlayerState struct {
	Transform geom.Transform
	Radius    float32
	Health    Health
}

// HostileState is the renderable part of a rock or ship.
type HostileState struct {
	ID        ecs.EntityId
	Transform geom.Transform
	Radius    float32
	Sides     int
	Ship      bool
}

type SpawnerState struct {
	Transform geom.Transform
	Kind      SpawnerKind
	Radius    float32
	Life      int
	NextSpawn time.Duration
}

// Snapshot is a value copy of everything the window draws.
type Snapshot struct {
	Arena     Arena
	Player    PlayerState
	HasPlayer bool
	Hostiles  []HostileState
	Spawners  []SpawnerState
	Session   Session
	Score     int
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Session: g.Session()}
	snap.Score = snap.Session.Score()

	var arena *Arena
	if g.storage.ReadSingleton(&arena) {
		snap.Arena = *arena
	}

	players := ecs.NewView[struct {
		*geom.Transform
		*Collider
		*Player
		*Health
	}](g.storage)
	for player := range players.Values() {
		snap.Player = PlayerState{
			Transform: *player.Transform,
			Radius:    player.Radius(),
			Health:    *player.Health,
		}
		snap.HasPlayer = true
		break
	}

	hostiles := ecs.NewView[struct {
		ecs.EntityId
		*geom.Transform
		*Collider
		*Hostile
		Rock *Rock `ecs:"optional"`
		Ship *Ship `ecs:"optional"`
	}](g.storage)
	for hostile := range hostiles.Values() {
		state := HostileState{
			ID:        hostile.EntityId,
			Transform: *hostile.Transform,
			Radius:    hostile.Collider.Radius(),
			Ship:      hostile.Ship != nil,
			Sides:     3,
		}
		if hostile.Rock != nil {
			state.Sides = hostile.Rock.Size.Sides
		}
		snap.Hostiles = append(snap.Hostiles, state)
	}
	slices.SortFunc(snap.Hostiles, func(a, b HostileState) int { return cmp.Compare(a.ID, b.ID) })

	spawners := ecs.NewView[struct {
		*geom.Transform
		*Collider
		*Spawner
	}](g.storage)
	for spawner := range spawners.Values() {
		snap.Spawners = append(snap.Spawners, SpawnerState{
			Transform: *spawner.Transform,
			Kind:      spawner.Kind,
			Radius:    spawner.Radius(),
			Life:      spawner.Life,
			NextSpawn: spawner.Timer.Remaining(),
		})
	}
	slices.SortFunc(snap.Spawners, func(a, b SpawnerState) int { return cmp.Compare(a.Kind, b.Kind) })

	return snap
}
