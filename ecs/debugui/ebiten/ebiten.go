// Package ebiten hosts the debugui overlay inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/skirmish/ecs/debugui"
)

// ImguiBackend wraps the cimgui-go Ebiten backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. ImGui's ini file is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Host runs an overlay inside a game's Update, Draw and Layout.
type Host struct {
	Backend ImguiBackend
	Overlay *debugui.Overlay
}

// Update runs the overlay for one frame.
func (h *Host) Update(dt float64) {
	h.Backend.BeginFrame()
	h.Overlay.Update(dt)
	h.Backend.EndFrame()
}

func (h *Host) Draw(screen *ebiten.Image) {
	h.Backend.Draw(screen)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) {
	h.Backend.Layout(outsideWidth, outsideHeight)
}

// CapturesKeyboard reports whether ImGui owns the keyboard this frame.
func (h *Host) CapturesKeyboard() bool {
	return h.Overlay.Input().WantCaptureKeyboard
}
