package asteroids

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/geom"
)

type hostileView struct {
	ecs.EntityId
	*geom.Transform
	*Collider
	*Hostile
}

// ResetDespawnedSystem starts each fixed step with an empty despawn set. Deletes queued
// in the previous step have been flushed by then.
type ResetDespawnedSystem struct {
	Despawned ecs.Singleton[Despawned]
}

func (s *ResetDespawnedSystem) Execute(frame *ecs.UpdateFrame) {
	if d := s.Despawned.Get(); d != nil {
		d.Clear()
	}
}

// PlayerCollisionSystem damages the player for every hostile it overlaps and despawns
// the hostile.
type PlayerCollisionSystem struct {
	Players ecs.Query[struct {
		ecs.EntityId
		*geom.Transform
		*Collider
		*Player
		*Health
	}]
	Hostiles  ecs.Query[hostileView]
	Despawned ecs.Singleton[Despawned]
	Session   ecs.Singleton[Session]
	Hits      ecs.Singleton[ecs.Events[HitEvent]]
}

func (s *PlayerCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	despawned := s.Despawned.Get()
	session := s.Session.Get()
	if despawned == nil || session == nil || session.GameOver {
		return
	}
	hits := s.Hits.Get()

	for player := range s.Players.Values() {
		playerShape := player.World(*player.Transform)

		for hostile := range s.Hostiles.Values() {
			if despawned.Has(hostile.EntityId) {
				continue
			}
			if !geom.Overlap(playerShape, hostile.World(*hostile.Transform)) {
				continue
			}

			dead := player.Health.Damage(hostile.Damage)
			despawned.Despawn(frame.Commands, hostile.EntityId)
			session.HitsTaken++
			session.Despawned++
			log.Info("hit thing", "damage", hostile.Damage, "health", player.Current)

			if hits != nil {
				hits.Send(HitEvent{
					Player:   player.EntityId,
					Attacker: hostile.EntityId,
					Damage:   hostile.Damage,
					Health:   player.Current,
				})
			}
			if dead && session.end("destroyed") {
				log.Warn("game over", "reason", session.Reason, "score", session.Score())
			}
		}
	}
}

// CoreDefenseSystem despawns hostiles that reach a rock spawner and takes a life from it.
type CoreDefenseSystem struct {
	Hostiles ecs.Query[hostileView]
	Spawners ecs.Query[struct {
		ecs.EntityId
		*geom.Transform
		*Collider
		*Spawner
	}]
	Despawned ecs.Singleton[Despawned]
	Session   ecs.Singleton[Session]
	Breaches  ecs.Singleton[ecs.Events[BreachEvent]]
}

func (s *CoreDefenseSystem) Execute(frame *ecs.UpdateFrame) {
	despawned := s.Despawned.Get()
	session := s.Session.Get()
	if despawned == nil || session == nil || session.GameOver {
		return
	}
	breaches := s.Breaches.Get()

	for hostile := range s.Hostiles.Values() {
		if despawned.Has(hostile.EntityId) {
			continue
		}
		hostileShape := hostile.World(*hostile.Transform)

		for spawner := range s.Spawners.Values() {
			if spawner.Kind != SpawnRocks {
				continue
			}
			if !geom.Overlap(spawner.World(*spawner.Transform), hostileShape) {
				continue
			}

			despawned.Despawn(frame.Commands, hostile.EntityId)
			spawner.Life = max(spawner.Life-1, 0)
			session.CoreBreaches++
			session.Despawned++
			log.Info("core breached", "life", spawner.Life)

			if breaches != nil {
				breaches.Send(BreachEvent{
					Spawner: spawner.EntityId,
					Hostile: hostile.EntityId,
					Life:    spawner.Life,
				})
			}
			if spawner.Life == 0 && session.end("core lost") {
				log.Warn("game over", "reason", session.Reason, "score", session.Score())
			}
			break
		}
	}
}
