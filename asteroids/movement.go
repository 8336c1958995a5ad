package asteroids

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

// PlayerMovementSystem turns and thrusts the player from Input and keeps it in the play area.
type PlayerMovementSystem struct {
	Players ecs.Query[struct {
		*geom.Transform
		*Player
	}]
	Input   ecs.Singleton[Input]
	Arena   ecs.Singleton[Arena]
	Session ecs.Singleton[Session]
}

func (s *PlayerMovementSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	arena := s.Arena.Get()
	if input == nil || arena == nil || over(s.Session.Get()) {
		return
	}
	dt := float32(frame.DeltaTime)

	var rotation, thrust float32
	if input.Left {
		rotation++
	}
	if input.Right {
		rotation--
	}
	if input.Thrust {
		thrust++
	}

	for player := range s.Players.Values() {
		player.RotateZ(rotation * player.RotationSpeed * dt)
		player.Advance(thrust * player.MovementSpeed * dt)
		player.SetXY(arena.PlayArea.Clamp(player.XY()))
	}
}

// Seek turns t toward target by at most turnRate*dt radians, then advances it speed*dt
// along its new forward. It returns false, leaving t untouched, when t sits on target.
func Seek(t *geom.Transform, target mgl32.Vec2, speed, turnRate, dt float32) bool {
	to := target.Sub(t.XY())
	if to.LenSqr() == 0 {
		return false
	}
	to = to.Normalize()

	remaining := float32(math.Acos(float64(mgl32.Clamp(t.Forward().Dot(to), -1, 1))))
	sign := -float32(math.Copysign(1, float64(t.Right().Dot(to))))

	t.RotateZ(sign * min(turnRate*dt, remaining))
	t.Advance(speed * dt)
	return true
}

// SteeringSystem applies Seek to every MoveTo entity that is not the player.
type SteeringSystem struct {
	Movers ecs.Query[struct {
		*geom.Transform
		*MoveTo
		Player *Player `ecs:"optional"`
	}]
	Players ecs.Query[struct {
		*geom.Transform
		*Player
	}]
	Session ecs.Singleton[Session]
}

func (s *SteeringSystem) Execute(frame *ecs.UpdateFrame) {
	if over(s.Session.Get()) {
		return
	}
	dt := float32(frame.DeltaTime)

	player, hasPlayer := s.Players.First()

	for mover := range s.Movers.Values() {
		if mover.Player != nil {
			continue
		}

		var target mgl32.Vec2
		switch mover.Mode {
		case MoveToPoint:
			target = mover.Target
		case MoveToPlayer:
			if !hasPlayer {
				continue
			}
			target = player.XY()
		default:
			continue
		}

		Seek(mover.Transform, target, mover.MovementSpeed, mover.RotationSpeed, dt)
	}
}

func over(session *Session) bool {
	return session != nil && session.GameOver
}
