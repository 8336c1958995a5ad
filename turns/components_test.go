package turns

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		spell, target Element
		want          float64
	}{
		{ElementFire, ElementAir, 1.5},
		{ElementAir, ElementEarth, 1.5},
		{ElementEarth, ElementWater, 1.5},
		{ElementWater, ElementFire, 1.5},
		{ElementAir, ElementFire, 0.5},
		{ElementFire, ElementWater, 0.5},
		{ElementFire, ElementEarth, 1},
		{ElementFire, ElementFire, 1},
		{ElementVoid, ElementAir, 1},
		{ElementWater, ElementVoid, 1},
	}
	for _, tt := range tests {
		t.Run(tt.spell.String()+"/"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Multiplier(tt.spell, tt.target))
		})
	}
}

func TestParseElement(t *testing.T) {
	for _, name := range []string{"earth", "fire", "water", "air", "void"} {
		e, err := ParseElement(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.String())
	}

	e, err := ParseElement(" Fire ")
	require.NoError(t, err)
	assert.Equal(t, ElementFire, e)

	e, err = ParseElement("")
	require.NoError(t, err)
	assert.Equal(t, ElementVoid, e)

	_, err = ParseElement("lightning")
	assert.Error(t, err)
}

func TestTurnOrderFollowsMoves(t *testing.T) {
	storage := ecs.NewStorage(NewRegistry())
	a := storage.Spawn(Name("a"), InBattle{})
	b := storage.Spawn(Name("b"), InBattle{})

	var order TurnOrder
	refA, refB := storage.CreateEntityRef(a), storage.CreateEntityRef(b)
	order.Push(refA)
	order.Push(refB)
	order.Push(nil)
	require.Len(t, order.Queue, 2)

	// Adding a marker moves a to another archetype; the queued ref follows it.
	moved := storage.AddComponent(a, TurnMarker{})
	require.NotEqual(t, a, moved)

	head, ok := order.Head()
	require.True(t, ok)
	assert.Equal(t, moved, head.Id)

	order.Remove(storage.CreateEntityRef(moved))
	require.Len(t, order.Queue, 1)
	assert.Equal(t, b, order.Queue[0].Id)

	storage.Delete(b)
	order.Remove(nil)
	assert.Empty(t, order.Queue)
	_, ok = order.Head()
	assert.False(t, ok)
}

func TestBattleStateLogIsCapped(t *testing.T) {
	var state BattleState
	for i := range maxLogLines + 10 {
		state.record(string(rune('a' + i%26)))
	}
	assert.Len(t, state.Log, maxLogLines)
	assert.Equal(t, string(rune('a'+10%26)), state.Log[0])
}
