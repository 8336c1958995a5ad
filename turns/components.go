// Package turns is the turn-based combat prototype: a queue of participants ordered by
// health, a timer per turn, and events that drive actions and turn changes.
package turns

import (
	"fmt"
	"strings"

	"github.com/plus3/skirmish/ecs"
)

type Name string

type Health struct {
	Current int
	Max     int
}

type Attack int

type Defense int

type Team uint8

const (
	TeamPlayer Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamEnemy {
		return "enemy"
	}
	return "player"
}

// Participant marks something that takes turns. Order is the spawn index, used to break
// ties in the turn order.
type Participant struct {
	Team    Team
	Element Element
	Order   int
}

// InBattle is removed when a participant is defeated.
type InBattle struct{}

// TurnMarker is carried by the participant whose turn it is.
type TurnMarker struct{}

// Defending doubles defense against attacks until the holder's next turn.
type Defending struct{}

// Appearance is only read by the window.
type Appearance struct {
	Width  float32
	Height float32
	Color  string
}

type Element uint8

const (
	ElementVoid Element = iota
	ElementEarth
	ElementFire
	ElementWater
	ElementAir
)

var elementNames = [...]string{"void", "earth", "fire", "water", "air"}

func (e Element) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	return fmt.Sprintf("element(%d)", e)
}

// ParseElement accepts the lowercase names; an empty string is void.
func ParseElement(name string) (Element, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ElementVoid, nil
	}
	for i, n := range elementNames {
		if n == name {
			return Element(i), nil
		}
	}
	return ElementVoid, fmt.Errorf("turns: unknown element %q", name)
}

// beats is the elemental cycle: fire > air > earth > water > fire.
var beats = map[Element]Element{
	ElementFire:  ElementAir,
	ElementAir:   ElementEarth,
	ElementEarth: ElementWater,
	ElementWater: ElementFire,
}

// Multiplier scales spell damage of element spell against a target of element target.
func Multiplier(spell, target Element) float64 {
	switch {
	case spell == ElementVoid || target == ElementVoid:
		return 1
	case beats[spell] == target:
		return 1.5
	case beats[target] == spell:
		return 0.5
	}
	return 1
}

type ActionKind uint8

const (
	ActionPass ActionKind = iota
	ActionAttack
	ActionSpell
	ActionDefend
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionSpell:
		return "spell"
	case ActionDefend:
		return "defend"
	}
	return "pass"
}

// Action is what a participant does with its turn. Element is only read for spells.
type Action struct {
	Kind    ActionKind
	Element Element
}

func AttackAction() Action { return Action{Kind: ActionAttack} }
func SpellAction(e Element) Action { return Action{Kind: ActionSpell, Element: e} }
func DefendAction() Action { return Action{Kind: ActionDefend} }
func PassAction() Action { return Action{} }

type EventKind uint8

const (
	EventStartBattle EventKind = iota
	EventStartTurn
	EventEndTurn
	EventPlayerAction
	EventEnemyAction
)

// TurnEvent drives the battle. Entity is set for turn events, Action for action events.
type TurnEvent struct {
	Kind   EventKind
	Entity *ecs.EntityRef
	Action Action
}

func StartBattle() TurnEvent { return TurnEvent{Kind: EventStartBattle} }
func StartTurn(e *ecs.EntityRef) TurnEvent { return TurnEvent{Kind: EventStartTurn, Entity: e} }
func EndTurn(e *ecs.EntityRef) TurnEvent { return TurnEvent{Kind: EventEndTurn, Entity: e} }
func PlayerAction(a Action) TurnEvent { return TurnEvent{Kind: EventPlayerAction, Action: a} }
func EnemyAction(a Action) TurnEvent { return TurnEvent{Kind: EventEnemyAction, Action: a} }

// sameEntity compares refs by the entity they currently point at. Marker components move
// participants between archetypes, so raw ids do not survive a turn.
func sameEntity(a, b *ecs.EntityRef) bool {
	return a.Valid() && b.Valid() && a.Id == b.Id
}

// TurnOrder is the queue of participants still to act this round. The head is active.
type TurnOrder struct {
	Queue []*ecs.EntityRef
}

func (o *TurnOrder) Push(e *ecs.EntityRef) {
	if e.Valid() {
		o.Queue = append(o.Queue, e)
	}
}

// Remove drops every occurrence of e, along with refs to deleted entities.
func (o *TurnOrder) Remove(e *ecs.EntityRef) {
	kept := o.Queue[:0]
	for _, ref := range o.Queue {
		if ref.Valid() && !sameEntity(ref, e) {
			kept = append(kept, ref)
		}
	}
	clear(o.Queue[len(kept):])
	o.Queue = kept
}

func (o *TurnOrder) Head() (*ecs.EntityRef, bool) {
	if len(o.Queue) == 0 {
		return nil, false
	}
	return o.Queue[0], true
}

type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	}
	return "none"
}

func sideOf(t Team) Side {
	if t == TeamEnemy {
		return SideEnemy
	}
	return SidePlayer
}

// TurnTimer counts down the active turn. Acted is set once the target's action resolved.
type TurnTimer struct {
	Side   Side
	Timer  ecs.Timer
	Target *ecs.EntityRef
	Acted  bool
}

func (t *TurnTimer) Active() bool {
	return t.Side != SideNone
}

func (t *TurnTimer) Clear() {
	*t = TurnTimer{}
}

// BattleState is the progress of the battle as a whole.
type BattleState struct {
	Round       int
	Turns       int
	Started     bool
	Over        bool
	Winner      Team
	TurnSeconds float64
	Log         []string
}

const maxLogLines = 64

func (b *BattleState) record(line string) {
	b.Log = append(b.Log, line)
	if len(b.Log) > maxLogLines {
		b.Log = b.Log[len(b.Log)-maxLogLines:]
	}
}

// NewRegistry registers every battle component.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Attack](registry)
	ecs.RegisterComponent[Defense](registry)
	ecs.RegisterComponent[Participant](registry)
	ecs.RegisterComponent[InBattle](registry)
	ecs.RegisterComponent[TurnMarker](registry)
	ecs.RegisterComponent[Defending](registry)
	ecs.RegisterComponent[Appearance](registry)
	return registry
}
