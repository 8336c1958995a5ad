package asteroids

import "github.com/plus3/skirmish/ecs"

// SessionSystem runs the clock and stops the spawners once the run is over.
type SessionSystem struct {
	Spawners ecs.Query[struct{ *Spawner }]
	Session  ecs.Singleton[Session]
}

func (s *SessionSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session == nil {
		return
	}

	if !session.GameOver {
		session.Elapsed += frame.DeltaTime
		return
	}
	for spawner := range s.Spawners.Values() {
		spawner.Timer.Paused = true
	}
}
