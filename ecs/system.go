package ecs

// System is one unit of per-frame behavior. Exported Query and Singleton fields are wired
// up by Scheduler.Register; any other fields are plain state that survives between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface. It has no query fields.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
