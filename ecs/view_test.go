package ecs_test

import (
	"iter"
	"testing"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	*Position
	*Velocity
}

func TestViewIteratesMatchingEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Tag("extra"))
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[movingView](storage)

	total := float32(0)
	count := 0
	for _, item := range view.Iter() {
		total += item.Position.X
		count++
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, float32(3), total)
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[movingView](storage)
	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	assert.Equal(t, Position{X: 3, Y: 3}, *ecs.ReadComponent[Position](storage, id))
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withHealth := storage.Spawn(Position{}, Health{Current: 5, Max: 5})
	without := storage.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	got := view.Get(withHealth)
	require.NotNil(t, got)
	require.NotNil(t, got.Health)
	assert.Equal(t, 5, got.Health.Current)

	got = view.Get(without)
	require.NotNil(t, got)
	assert.Nil(t, got.Health)

	assert.Len(t, collect(view.Iter()), 2)
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4}, Score(10))

	view := ecs.NewView[struct {
		ecs.EntityId
		*Score
	}](storage)

	for entity, item := range view.Iter() {
		assert.Equal(t, id, entity)
		assert.Equal(t, id, item.EntityId)
	}
	assert.Equal(t, id, view.Get(id).EntityId)
}

func TestViewGetMissing(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	view := ecs.NewView[movingView](storage)
	assert.Nil(t, view.Get(id))

	var out movingView
	assert.False(t, view.Fill(id, &out))
}

func TestViewGetRefFollowsMoves(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{})
	ref := storage.CreateEntityRef(id)

	storage.AddComponent(id, Tag("moved"))

	view := ecs.NewView[movingView](storage)
	got := view.GetRef(ref)
	require.NotNil(t, got)
	assert.Equal(t, float32(1), got.Position.X)

	storage.Delete(ref.Id)
	assert.Nil(t, view.GetRef(ref))
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Health *Health `ecs:"optional"`
	}{Position: &Position{X: 8}})

	assert.Equal(t, float32(8), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Health](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Health *Health `ecs:"optional"`
		}{})
	})
}

func TestViewRejectsBadStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}

func collect[K, V any](seq iter.Seq2[K, V]) []V {
	var out []V
	for _, v := range seq {
		out = append(out, v)
	}
	return out
}
