package ecs

import (
	"math"
	"time"
)

// TimerMode selects whether a Timer stops at its duration or wraps around.
type TimerMode uint8

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts frame time toward a duration. It is a plain value and is usually embedded
// in a component or singleton and advanced by the owning system with Tick.
type Timer struct {
	Duration time.Duration
	Mode     TimerMode
	Paused   bool

	elapsed  time.Duration
	finished bool
	fired    int
}

// NewTimer returns a stopped-at-zero timer.
func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{Duration: duration, Mode: mode}
}

// TimerFromSeconds is NewTimer with a float duration.
func TimerFromSeconds(seconds float64, mode TimerMode) Timer {
	return NewTimer(time.Duration(seconds*float64(time.Second)), mode)
}

// Tick advances the timer by dt seconds. A repeating timer that crosses its duration
// several times in one tick reports each crossing in TimesFinishedThisTick.
func (t *Timer) Tick(dt float64) {
	t.fired = 0
	if t.Paused || dt <= 0 {
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return
	}
	if t.Mode == TimerOnce && t.finished {
		return
	}

	t.elapsed += time.Duration(dt * float64(time.Second))
	if t.elapsed < t.Duration {
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return
	}

	t.finished = true
	if t.Mode == TimerOnce {
		t.elapsed = t.Duration
		t.fired = 1
		return
	}

	if t.Duration <= 0 {
		t.elapsed = 0
		t.fired = 1
		return
	}
	t.fired = int(t.elapsed / t.Duration)
	t.elapsed %= t.Duration
}

// JustFinished reports whether the last Tick reached the duration.
func (t *Timer) JustFinished() bool {
	return t.fired > 0
}

// TimesFinishedThisTick is how many times the last Tick reached the duration.
func (t *Timer) TimesFinishedThisTick() int {
	return t.fired
}

// Finished is true for a once timer after it fires, and for a repeating timer only on
// the tick that wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

func (t *Timer) Remaining() time.Duration {
	return max(t.Duration-t.elapsed, 0)
}

// Fraction is elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return math.Min(float64(t.elapsed)/float64(t.Duration), 1)
}

// Reset rewinds the timer to zero and clears its finished state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.fired = 0
}
