// Package debugui draws a Dear ImGui developer overlay from an ECS world of its own.
// Entities carry ImguiItem render functions; ImguiSystem defers them to the end of the
// frame so they run between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
)

// ImguiItem holds one render function. Attach it to an entity of the overlay world.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this frame. Game input
// should be ignored while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// NewRegistry registers the overlay's own components.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	return registry
}

// Overlay is the overlay world: its storage, the scheduler that runs ImguiSystem and the
// input capture state.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
}

func NewOverlay() *Overlay {
	storage := ecs.NewStorage(NewRegistry())
	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton[ImguiInputState](storage),
	}
	o.scheduler.Register(&ImguiSystem{})
	return o
}

// Add spawns an item whose render function runs every frame.
func (o *Overlay) Add(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

// Update runs the overlay systems. Call it between the backend's BeginFrame and EndFrame.
func (o *Overlay) Update(dt float64) {
	o.scheduler.Once(dt)
}

func (o *Overlay) Input() ImguiInputState {
	return *o.input.Get()
}

func (o *Overlay) Storage() *ecs.Storage {
	return o.storage
}
