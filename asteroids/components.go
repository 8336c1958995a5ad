// Package asteroids is the arena prototype: timed spawners emit rocks that seek the
// core and ships that seek the player, and pairwise overlap tests turn contact into
// damage and despawns. It is headless; cmd/asteroids draws it.
package asteroids

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kamstrup/intmap"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

// Collider is a collision shape in the entity's local space.
type Collider struct {
	Shape geom.Shape
}

// World places the shape at t.
func (c Collider) World(t geom.Transform) geom.Shape {
	return c.Shape.Place(t)
}

// Radius is the circle radius, or the half width of the bounds for polygons.
func (c Collider) Radius() float32 {
	if circle, ok := c.Shape.(geom.Circle); ok {
		return circle.Radius
	}
	return c.Shape.Bounds().Width() / 2
}

type Player struct {
	MovementSpeed float32
	RotationSpeed float32
}

type Health struct {
	Current int
	Max     int
}

// Damage subtracts amount and clamps at zero. Returns true when health reaches zero.
func (h *Health) Damage(amount int) bool {
	h.Current = max(h.Current-amount, 0)
	return h.Current == 0
}

// Hostile marks anything that hurts the player on contact and breaches the core.
type Hostile struct {
	Damage int
}

type Rock struct {
	Size config.RockSize
}

type Ship struct{}

type SpawnerKind uint8

const (
	SpawnRocks SpawnerKind = iota
	SpawnShips
)

func (k SpawnerKind) String() string {
	switch k {
	case SpawnRocks:
		return "rocks"
	case SpawnShips:
		return "ships"
	}
	return "unknown"
}

// Spawner emits one hostile per completion of its timer. Only rock spawners use Sizes
// and Life; a rock spawner is also the core that hostiles try to reach.
type Spawner struct {
	Kind  SpawnerKind
	Timer ecs.Timer
	Sizes []config.RockSize
	Life  int
}

type MoveMode uint8

const (
	MoveNone MoveMode = iota
	MoveToPlayer
	MoveToPoint
)

// MoveTo steers an entity. Target is only read in MoveToPoint mode.
type MoveTo struct {
	Mode          MoveMode
	MovementSpeed float32
	RotationSpeed float32
	Target        mgl32.Vec2
}

// NewRegistry registers every component the arena uses.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[geom.Transform](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Hostile](registry)
	ecs.RegisterComponent[Rock](registry)
	ecs.RegisterComponent[Ship](registry)
	ecs.RegisterComponent[Spawner](registry)
	ecs.RegisterComponent[MoveTo](registry)
	return registry
}

// Arena holds the three fixed rectangles, all centred on the origin.
type Arena struct {
	SpawnArea  geom.Rect
	CenterArea geom.Rect
	PlayArea   geom.Rect
}

func NewArena(cfg config.ArenaConfig) Arena {
	b := mgl32.Vec2{cfg.Width, cfg.Height}
	scaled := func(s float32) geom.Rect {
		return geom.NewRect(-b[0]*s, -b[1]*s, b[0]*s, b[1]*s)
	}
	return Arena{
		SpawnArea:  scaled(1),
		CenterArea: scaled(cfg.ExclusionScale),
		PlayArea:   scaled(cfg.PlayScale),
	}
}

// Input is the pressed state of the controls for the current frame.
type Input struct {
	Left   bool
	Right  bool
	Thrust bool
	Quit   bool
}

// Session tracks the run for the HUD and the score table.
type Session struct {
	Elapsed      float64
	RocksSpawned int
	ShipsSpawned int
	HitsTaken    int
	CoreBreaches int
	Despawned    int
	GameOver     bool
	Reason       string
}

// Score is ten points per whole second survived, minus penalties, never negative.
func (s Session) Score() int {
	score := int(math.Floor(s.Elapsed))*10 - 25*s.HitsTaken - 50*s.CoreBreaches
	return max(score, 0)
}

func (s *Session) end(reason string) bool {
	if s.GameOver {
		return false
	}
	s.GameOver = true
	s.Reason = reason
	return true
}

// Despawned is the set of entities already queued for deletion in this fixed step, so
// two systems never delete the same entity twice.
type Despawned struct {
	ids *intmap.Map[ecs.EntityId, struct{}]
}

func NewDespawned() Despawned {
	return Despawned{ids: intmap.New[ecs.EntityId, struct{}](32)}
}

// Despawn queues id for deletion unless it already is. Returns false for repeats.
func (d *Despawned) Despawn(commands *ecs.Commands, id ecs.EntityId) bool {
	if d.Has(id) {
		return false
	}
	d.ids.Put(id, struct{}{})
	commands.Delete(id)
	return true
}

func (d *Despawned) Has(id ecs.EntityId) bool {
	if d.ids == nil {
		return false
	}
	_, ok := d.ids.Get(id)
	return ok
}

func (d *Despawned) Len() int {
	if d.ids == nil {
		return 0
	}
	return d.ids.Len()
}

func (d *Despawned) Clear() {
	if d.ids == nil {
		d.ids = intmap.New[ecs.EntityId, struct{}](32)
		return
	}
	d.ids.Clear()
}

// Rand is the arena's seeded random source.
type Rand struct {
	*rand.Rand
}

func NewRand(seed uint64) Rand {
	return Rand{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// HitEvent is sent when a hostile reaches the player.
type HitEvent struct {
	Player   ecs.EntityId
	Attacker ecs.EntityId
	Damage   int
	Health   int
}

// BreachEvent is sent when a hostile reaches a rock spawner.
type BreachEvent struct {
	Spawner ecs.EntityId
	Hostile ecs.EntityId
	Life    int
}

// SpawnEvent is sent for every hostile a spawner queues.
type SpawnEvent struct {
	Kind SpawnerKind
	At   mgl32.Vec2
}
