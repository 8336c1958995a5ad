package debugui

import (
	"testing"
	"time"

	"github.com/plus3/skirmish/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := NewFrameHistory(3)
	assert.Zero(t, h.Average())

	h.Push(10)
	assert.Equal(t, float32(10), h.Average())

	h.Push(20)
	h.Push(30)
	assert.Equal(t, float32(20), h.Average())

	// The oldest sample is overwritten.
	h.Push(60)
	assert.Equal(t, []float32{60, 20, 30}, h.Samples())
	assert.InDelta(t, 110.0/3, h.Average(), 1e-4)

	assert.Len(t, NewFrameHistory(0).Samples(), 1)
}

func TestStatsWindowTick(t *testing.T) {
	w := NewStatsWindow("stats", ecs.NewStorage(ecs.NewComponentRegistry()))

	start := time.Unix(100, 0)
	w.Tick(start)
	assert.Zero(t, w.History().Average(), "first tick only sets the clock")

	w.Tick(start.Add(16 * time.Millisecond))
	w.Tick(start.Add(36 * time.Millisecond))
	assert.InDelta(t, 18, w.History().Average(), 1e-3)
}

func TestOverlayAdd(t *testing.T) {
	o := NewOverlay()
	o.Add(func() {})
	o.Add(func() {})

	stats := o.Storage().CollectStats()
	assert.Equal(t, 2, stats.TotalEntityCount)
	assert.Equal(t, ImguiInputState{}, o.Input())
}
