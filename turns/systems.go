package turns

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/plus3/skirmish/ecs"
)

type combatant struct {
	ecs.EntityId
	*Name
	*Health
	*Attack
	*Defense
	*Participant
	InBattle  *InBattle  `ecs:"optional"`
	Defending *Defending `ecs:"optional"`
}

func (c combatant) alive() bool {
	return c.InBattle != nil && c.Health.Current > 0
}

// byTurnOrder sorts by current health, lowest first, then by spawn order.
func byTurnOrder(a, b combatant) int {
	return cmp.Or(
		cmp.Compare(a.Health.Current, b.Health.Current),
		cmp.Compare(a.Order, b.Order),
	)
}

func lookup(q *ecs.Query[combatant], ref *ecs.EntityRef) *combatant {
	if !ref.Valid() {
		return nil
	}
	return q.Get(ref.Id)
}

func living(q *ecs.Query[combatant]) []combatant {
	var out []combatant
	for c := range q.Values() {
		if c.alive() {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, byTurnOrder)
	return out
}

// TurnTimerSystem ends the active turn when its timer runs out.
type TurnTimerSystem struct {
	Timer  ecs.Singleton[TurnTimer]
	Events ecs.Singleton[ecs.Events[TurnEvent]]
}

func (s *TurnTimerSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	events := s.Events.Get()
	if timer == nil || events == nil || !timer.Active() {
		return
	}

	timer.Timer.Tick(frame.DeltaTime)
	if timer.Timer.JustFinished() && !timer.Acted {
		log.Debug("turn timed out", "side", timer.Side)
		events.Send(EndTurn(timer.Target))
	}
}

// EnemyAISystem picks an action for the active enemy: defend when badly hurt, else attack.
type EnemyAISystem struct {
	Combatants ecs.Query[combatant]
	Timer      ecs.Singleton[TurnTimer]
	Events     ecs.Singleton[ecs.Events[TurnEvent]]
}

func (s *EnemyAISystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	events := s.Events.Get()
	if timer == nil || events == nil || timer.Side != SideEnemy || timer.Acted {
		return
	}

	actor := lookup(&s.Combatants, timer.Target)
	if actor == nil || !actor.alive() {
		return
	}

	action := AttackAction()
	if actor.Health.Current*10 < actor.Health.Max*3 {
		action = DefendAction()
	}
	events.Send(EnemyAction(action))
}

// ActionSystem resolves the active participant's action and ends its turn.
type ActionSystem struct {
	Combatants ecs.Query[combatant]
	Order      ecs.Singleton[TurnOrder]
	Timer      ecs.Singleton[TurnTimer]
	Battle     ecs.Singleton[BattleState]
	Events     ecs.Singleton[ecs.Events[TurnEvent]]

	reader ecs.EventReader[TurnEvent]
}

func (s *ActionSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	events := s.Events.Get()
	battle := s.Battle.Get()
	if timer == nil || events == nil || battle == nil {
		return
	}

	for event := range s.reader.Read(events) {
		var side Side
		switch event.Kind {
		case EventPlayerAction:
			side = SidePlayer
		case EventEnemyAction:
			side = SideEnemy
		default:
			continue
		}

		if battle.Over || timer.Acted || timer.Side != side {
			log.Debug("action ignored", "side", side, "action", event.Action.Kind)
			continue
		}

		actor := lookup(&s.Combatants, timer.Target)
		if actor == nil || !actor.alive() {
			continue
		}

		s.resolve(frame, battle, *actor, event.Action)
		timer.Acted = true
		events.Send(EndTurn(timer.Target))
	}
}

func (s *ActionSystem) resolve(frame *ecs.UpdateFrame, battle *BattleState, actor combatant, action Action) {
	switch action.Kind {
	case ActionDefend:
		frame.Commands.AddComponent(actor.EntityId, Defending{})
		battle.record(fmt.Sprintf("%s defends", *actor.Name))
		return
	case ActionPass:
		battle.record(fmt.Sprintf("%s passes", *actor.Name))
		return
	}

	target, ok := s.target(actor)
	if !ok {
		battle.record(fmt.Sprintf("%s has no one to hit", *actor.Name))
		return
	}

	var damage int
	if action.Kind == ActionSpell {
		damage = int(math.Round(float64(*actor.Attack) * Multiplier(action.Element, target.Element)))
	} else {
		defense := int(*target.Defense)
		if target.Defending != nil {
			defense *= 2
		}
		damage = int(*actor.Attack) - defense
	}
	damage = max(damage, 1)
	target.Health.Current = max(target.Health.Current-damage, 0)

	line := fmt.Sprintf("%s %s %s for %d (%d left)", *actor.Name, verb(action), *target.Name, damage, target.Health.Current)
	battle.record(line)
	log.Info(line)
}

func verb(action Action) string {
	if action.Kind == ActionSpell {
		return "casts " + action.Element.String() + " at"
	}
	return "attacks"
}

// target is the first living opponent in turn order: those still queued this round
// first, then everyone else by the sort the next round would use.
func (s *ActionSystem) target(actor combatant) (combatant, bool) {
	isTarget := func(c *combatant) bool {
		return c != nil && c.alive() && c.Team != actor.Team
	}

	if order := s.Order.Get(); order != nil {
		for _, ref := range order.Queue {
			if c := lookup(&s.Combatants, ref); isTarget(c) {
				return *c, true
			}
		}
	}
	for _, c := range living(&s.Combatants) {
		if isTarget(&c) {
			return c, true
		}
	}
	return combatant{}, false
}

// DefeatSystem takes participants at zero health out of the battle and decides the winner.
type DefeatSystem struct {
	Combatants ecs.Query[combatant]
	Order      ecs.Singleton[TurnOrder]
	Timer      ecs.Singleton[TurnTimer]
	Battle     ecs.Singleton[BattleState]
}

func (s *DefeatSystem) Execute(frame *ecs.UpdateFrame) {
	battle := s.Battle.Get()
	order := s.Order.Get()
	timer := s.Timer.Get()
	if battle == nil || order == nil || timer == nil || !battle.Started || battle.Over {
		return
	}

	alive := map[Team]int{}
	for c := range s.Combatants.Values() {
		if c.InBattle == nil {
			continue
		}
		if c.Health.Current > 0 {
			alive[c.Team]++
			continue
		}

		ref := frame.Storage.CreateEntityRef(c.EntityId)
		frame.Commands.RemoveComponent(c.EntityId, reflect.TypeFor[InBattle]())
		order.Remove(ref)
		// A participant that dies on its own turn loses the turn.
		if sameEntity(timer.Target, ref) && !timer.Acted {
			timer.Clear()
			frame.Commands.RemoveComponent(c.EntityId, reflect.TypeFor[TurnMarker]())
		}
		battle.record(fmt.Sprintf("%s is defeated", *c.Name))
		log.Info("defeated", "name", *c.Name, "team", c.Team)
	}

	for _, team := range []Team{TeamPlayer, TeamEnemy} {
		if alive[team] > 0 {
			continue
		}
		battle.Over = true
		battle.Winner = TeamPlayer
		if team == TeamPlayer {
			battle.Winner = TeamEnemy
		}
		timer.Clear()
		battle.record(fmt.Sprintf("%s team wins in round %d", battle.Winner, battle.Round))
		log.Info("battle over", "winner", battle.Winner, "round", battle.Round)
		return
	}
}

// TurnOrderSystem keeps the queue in step with turn events and activates its head.
type TurnOrderSystem struct {
	Combatants ecs.Query[combatant]
	Order      ecs.Singleton[TurnOrder]
	Timer      ecs.Singleton[TurnTimer]
	Battle     ecs.Singleton[BattleState]
	Events     ecs.Singleton[ecs.Events[TurnEvent]]

	reader ecs.EventReader[TurnEvent]
}

func (s *TurnOrderSystem) Execute(frame *ecs.UpdateFrame) {
	order := s.Order.Get()
	timer := s.Timer.Get()
	battle := s.Battle.Get()
	events := s.Events.Get()
	if order == nil || timer == nil || battle == nil || events == nil {
		return
	}

	for event := range s.reader.Read(events) {
		switch event.Kind {
		case EventStartBattle:
			if battle.Started {
				continue
			}
			s.buildRound(frame.Storage, order)
			battle.Started = true
			battle.Round = 1
			battle.record("battle starts")
			log.Info("battle started", "participants", len(order.Queue))
		case EventStartTurn:
			order.Push(event.Entity)
		case EventEndTurn:
			order.Remove(event.Entity)
			if event.Entity.Valid() {
				frame.Commands.RemoveComponent(event.Entity.Id, reflect.TypeFor[TurnMarker]())
			}
			if sameEntity(timer.Target, event.Entity) {
				timer.Clear()
			}
		}
	}

	if !battle.Started || battle.Over || timer.Active() {
		return
	}

	if len(order.Queue) == 0 {
		if s.buildRound(frame.Storage, order) == 0 {
			return
		}
		battle.Round++
		battle.record(fmt.Sprintf("round %d", battle.Round))
	}

	for len(order.Queue) > 0 {
		head, _ := order.Head()
		actor := lookup(&s.Combatants, head)
		if actor == nil || !actor.alive() {
			order.Queue = order.Queue[1:]
			continue
		}

		*timer = TurnTimer{
			Side:   sideOf(actor.Team),
			Timer:  ecs.TimerFromSeconds(battle.TurnSeconds, ecs.TimerOnce),
			Target: head,
		}
		// Deferred so it also clears a Defend added earlier in this frame.
		storage := frame.Storage
		frame.Commands.Defer(func() {
			if head.Valid() {
				storage.RemoveComponent(head.Id, reflect.TypeFor[Defending]())
			}
		})
		frame.Commands.AddComponent(head.Id, TurnMarker{})
		battle.Turns++
		log.Debug("turn started", "name", *actor.Name, "side", timer.Side)
		return
	}
}

func (s *TurnOrderSystem) buildRound(storage *ecs.Storage, order *TurnOrder) int {
	order.Queue = order.Queue[:0]
	for _, c := range living(&s.Combatants) {
		order.Push(storage.CreateEntityRef(c.EntityId))
	}
	return len(order.Queue)
}
