package ecs

// UpdateFrame is what a system receives from Scheduler.Once: the step length in
// seconds, the world, and the command buffer flushed after the last system.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
