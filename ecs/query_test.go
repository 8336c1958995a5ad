package ecs_test

import (
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPanicsBeforeExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movingView](storage)

	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Values() })
}

func TestQuerySnapshot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{})

	query := ecs.NewQuery[movingView](storage)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	// New archetypes and rows are only picked up by the next Execute.
	storage.Spawn(Position{X: 2}, Velocity{}, Frozen{})
	assert.Equal(t, 1, query.Len())

	query.Execute()
	assert.Equal(t, 2, query.Len())

	xs := []float32{}
	for item := range query.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.ElementsMatch(t, []float32{1, 2}, xs)
}

func TestQueryFirstAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movingView](storage)

	query.Execute()
	_, ok := query.First()
	assert.False(t, ok)

	id := storage.Spawn(Position{X: 5}, Velocity{DX: 1})
	query.Execute()

	first, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, float32(5), first.Position.X)

	got := query.Get(id)
	require.NotNil(t, got)
	assert.Equal(t, float32(1), got.Velocity.DX)
}

func TestQueryIterStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for range 10 {
		storage.Spawn(Position{}, Velocity{})
	}

	query := ecs.NewQuery[movingView](storage)
	query.Execute()

	seen := 0
	for range query.Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
