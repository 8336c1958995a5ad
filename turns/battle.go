package turns

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs"
)

// Battle owns one fight: the configured teams, their singletons and the schedule that
// runs the turn systems in order.
type Battle struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	events *ecs.Singleton[ecs.Events[TurnEvent]]
	order  *ecs.Singleton[TurnOrder]
	timer  *ecs.Singleton[TurnTimer]
	state  *ecs.Singleton[BattleState]

	elapsed time.Duration
}

// NewBattle validates cfg and spawns the player team followed by the enemies.
func NewBattle(cfg config.TurnsConfig) (*Battle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("turns: %w", err)
	}

	storage := ecs.NewStorage(NewRegistry())
	b := &Battle{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		events:    ecs.AddEvents[TurnEvent](storage),
		order:     ecs.NewSingleton[TurnOrder](storage),
		timer:     ecs.NewSingleton[TurnTimer](storage),
		state:     ecs.NewSingleton(storage, BattleState{TurnSeconds: cfg.TurnSeconds}),
	}

	order := 0
	for _, team := range []struct {
		team    Team
		members []config.CombatantConfig
	}{
		{TeamPlayer, cfg.Players},
		{TeamEnemy, cfg.Enemies},
	} {
		for _, member := range team.members {
			element, err := ParseElement(member.Element)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", member.Name, err)
			}
			storage.Spawn(
				Name(member.Name),
				Health{Current: member.Health, Max: member.Health},
				Attack(member.Attack),
				Defense(member.Defense),
				Participant{Team: team.team, Element: element, Order: order},
				Appearance{Width: member.Width, Height: member.Height, Color: member.Color},
				InBattle{},
			)
			order++
		}
	}
	log.Debug("battle ready", "players", len(cfg.Players), "enemies", len(cfg.Enemies))

	b.scheduler.Register(&ecs.EventUpdateSystem[TurnEvent]{})
	b.scheduler.Register(&TurnTimerSystem{})
	b.scheduler.Register(&EnemyAISystem{})
	b.scheduler.Register(&ActionSystem{})
	b.scheduler.Register(&DefeatSystem{})
	b.scheduler.Register(&TurnOrderSystem{})

	return b, nil
}

// Send queues an event for the next Step.
func (b *Battle) Send(event TurnEvent) {
	b.events.Get().Send(event)
}

// Step runs the turn systems once with dt seconds of turn time.
func (b *Battle) Step(dt float64) {
	if dt > 0 && !b.state.Get().Over {
		b.elapsed += time.Duration(dt * float64(time.Second))
	}
	b.scheduler.Once(dt)
}

func (b *Battle) Storage() *ecs.Storage {
	return b.storage
}

func (b *Battle) Scheduler() *ecs.Scheduler {
	return b.scheduler
}

func (b *Battle) Over() bool {
	return b.state.Get().Over
}

// ParticipantState is a value copy of one combatant.
type ParticipantState struct {
	Name       string
	Team       Team
	Element    Element
	Order      int
	Health     Health
	Attack     int
	Defense    int
	Appearance Appearance
	InBattle   bool
	Active     bool
	Defending  bool
}

// Snapshot is everything the window draws. Participants are in spawn order.
type Snapshot struct {
	Participants []ParticipantState
	Queue        []string
	Active       string
	Side         Side
	TimeLeft     time.Duration
	Round        int
	Turns        int
	Started      bool
	Over         bool
	Winner       Team
	Log          []string
}

type participantView struct {
	*Name
	*Health
	*Attack
	*Defense
	*Participant
	*Appearance
	InBattle   *InBattle   `ecs:"optional"`
	TurnMarker *TurnMarker `ecs:"optional"`
	Defending  *Defending  `ecs:"optional"`
}

func (b *Battle) Snapshot() Snapshot {
	state := b.state.Get()
	timer := b.timer.Get()
	snap := Snapshot{
		Side:    timer.Side,
		Round:   state.Round,
		Turns:   state.Turns,
		Started: state.Started,
		Over:    state.Over,
		Winner:  state.Winner,
		Log:     slices.Clone(state.Log),
	}
	if timer.Active() {
		snap.TimeLeft = timer.Timer.Remaining()
	}

	view := ecs.NewView[participantView](b.storage)
	for p := range view.Values() {
		ps := ParticipantState{
			Name:       string(*p.Name),
			Team:       p.Team,
			Element:    p.Element,
			Order:      p.Order,
			Health:     *p.Health,
			Attack:     int(*p.Attack),
			Defense:    int(*p.Defense),
			Appearance: *p.Appearance,
			InBattle:   p.InBattle != nil,
			Active:     p.TurnMarker != nil,
			Defending:  p.Defending != nil,
		}
		if ps.Active {
			snap.Active = ps.Name
		}
		snap.Participants = append(snap.Participants, ps)
	}
	slices.SortFunc(snap.Participants, func(a, b ParticipantState) int { return a.Order - b.Order })

	for _, ref := range b.order.Get().Queue {
		if !ref.Valid() {
			continue
		}
		if p := view.Get(ref.Id); p != nil {
			snap.Queue = append(snap.Queue, string(*p.Name))
		}
	}
	return snap
}

// Result summarizes a battle for the score store.
type Result struct {
	Over      bool
	Winner    Team
	Rounds    int
	Turns     int
	Survivors []string
	Duration  time.Duration
}

func (b *Battle) Result() Result {
	state := b.state.Get()
	result := Result{
		Over:     state.Over,
		Winner:   state.Winner,
		Rounds:   state.Round,
		Turns:    state.Turns,
		Duration: b.elapsed,
	}
	for _, p := range b.Snapshot().Participants {
		if p.InBattle && p.Health.Current > 0 {
			result.Survivors = append(result.Survivors, p.Name)
		}
	}
	return result
}
