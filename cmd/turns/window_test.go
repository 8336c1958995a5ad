package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/turns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceParticipants(t *testing.T) {
	battle, err := turns.NewBattle(config.DefaultTurnsConfig())
	require.NoError(t, err)

	slots := placeParticipants(battle.Snapshot().Participants)
	require.Len(t, slots, 6)

	names := []string{"Silver", "Blue", "Red", "Green"}
	for i, name := range names {
		assert.Equal(t, name, slots[i].Name)
		assert.Equal(t, mgl32.Vec2{-400, float32(40 * i)}, slots[i].Rect.Center(), name)
	}
	assert.Equal(t, float32(25), slots[0].Rect.Width())
	assert.Equal(t, float32(23), slots[0].Rect.Height())

	assert.Equal(t, mgl32.Vec2{400, 0}, slots[4].Rect.Center())
	assert.Equal(t, mgl32.Vec2{400, 40}, slots[5].Rect.Center())
}

func TestNewWindowParsesColors(t *testing.T) {
	battle, err := turns.NewBattle(config.DefaultTurnsConfig())
	require.NoError(t, err)

	w, err := newWindow(battle)
	require.NoError(t, err)
	assert.Len(t, w.colors, 6)

	cfg := config.DefaultTurnsConfig()
	cfg.Players[0].Color = "mauve"
	battle, err = turns.NewBattle(cfg)
	require.NoError(t, err)
	_, err = newWindow(battle)
	assert.ErrorContains(t, err, "Silver")
}

func TestStatusLines(t *testing.T) {
	battle, err := turns.NewBattle(config.DefaultTurnsConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"Press Enter to start the battle."}, statusLines(battle.Snapshot()))

	battle.Send(turns.StartBattle())
	battle.Step(0)
	lines := statusLines(battle.Snapshot())
	assert.Equal(t, "Round 1   Turn: Green (player) 10.0s", lines[0])
	assert.Equal(t, "battle starts", lines[len(lines)-1])
}

func TestTail(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, tail([]string{"a", "b"}, 3))
	assert.Equal(t, []string{"c", "d"}, tail([]string{"a", "b", "c", "d"}, 2))
}
