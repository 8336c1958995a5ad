package ecs

// FixedStep drives a Scheduler at a constant rate from variable frame times. Leftover
// time carries into the next Advance; when a frame is so long that more than MaxSteps
// steps are due, the surplus is dropped so the simulation never spirals.
type FixedStep struct {
	Scheduler *Scheduler
	Step      float64
	MaxSteps  int

	accumulator float64
	steps       int64
}

// NewFixedStep runs scheduler hz times per simulated second.
func NewFixedStep(scheduler *Scheduler, hz float64) *FixedStep {
	if hz <= 0 {
		panic("fixed step rate must be positive")
	}
	return &FixedStep{
		Scheduler: scheduler,
		Step:      1 / hz,
		MaxSteps:  8,
	}
}

// Advance adds dt seconds and runs every step that is now due. Returns the step count.
func (f *FixedStep) Advance(dt float64) int {
	if dt > 0 {
		f.accumulator += dt
	}

	ran := 0
	for f.accumulator >= f.Step {
		if f.MaxSteps > 0 && ran == f.MaxSteps {
			f.accumulator = 0
			break
		}
		f.Scheduler.Once(f.Step)
		f.accumulator -= f.Step
		ran++
	}
	f.steps += int64(ran)
	return ran
}

// Overstep is the fraction of a step accumulated but not yet simulated, for interpolation.
func (f *FixedStep) Overstep() float64 {
	return f.accumulator / f.Step
}

// Steps is the total number of steps run so far.
func (f *FixedStep) Steps() int64 {
	return f.steps
}
