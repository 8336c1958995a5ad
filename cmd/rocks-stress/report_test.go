package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/skirmish/asteroids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for i := 100; i >= 1; i-- {
		s.Samples = append(s.Samples, time.Duration(i)*time.Millisecond)
	}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 99*time.Millisecond, s.P99)
	assert.Equal(t, 100*time.Millisecond, s.Samples[0], "samples keep their order")
}

func TestReportGenerate(t *testing.T) {
	r := &Report{Duration: time.Second, Arenas: 2, Hits: 3, Breaches: 1, Spawns: 9, GCPauseMetrics: true}
	r.MemStatsEnd.HeapAlloc = 3 << 20

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Arenas Played:** 2")
	assert.Contains(t, out, "**Hits / Breaches / Spawns:** 3 / 1 / 9")
	assert.Contains(t, out, "-> 3.00 (end)")
	assert.Contains(t, out, "GC Pause Durations")
}

func TestFinishArena(t *testing.T) {
	var r Report
	r.finishArena(asteroids.Session{Elapsed: 12.5})
	r.finishArena(asteroids.Session{Elapsed: 3})
	assert.Equal(t, 15500*time.Millisecond, r.SimulatedTime)
	assert.Equal(t, 120, r.BestScore)
}

func TestScriptedInputTurnsBothWays(t *testing.T) {
	var left, right, thrust int
	for frame := range 240 {
		in := scriptedInput(frame)
		assert.False(t, in.Left && in.Right, "frame %d", frame)
		if in.Left {
			left++
		}
		if in.Right {
			right++
		}
		if in.Thrust {
			thrust++
		}
	}
	assert.Equal(t, 90, left)
	assert.Equal(t, 50, right)
	assert.Equal(t, 160, thrust)
}
