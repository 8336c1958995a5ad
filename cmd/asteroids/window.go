package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/skirmish/asteroids"
	"github.com/plus3/skirmish/config"
	"github.com/plus3/skirmish/ecs/debugui"
	debugui_ebiten "github.com/plus3/skirmish/ecs/debugui/ebiten"
	"github.com/plus3/skirmish/geom"
	"github.com/plus3/skirmish/render"
)

var (
	colorBackground = color.RGBA{12, 14, 24, 255}
	colorSpawnArea  = color.RGBA{60, 60, 80, 255}
	colorPlayArea   = color.RGBA{40, 90, 60, 255}
	colorCenter     = color.RGBA{30, 40, 70, 255}
	colorPlayer     = color.RGBA{120, 220, 255, 255}
	colorRock       = color.RGBA{200, 180, 150, 255}
	colorShip       = color.RGBA{240, 90, 90, 255}
	colorSpawner    = color.RGBA{230, 200, 80, 255}
)

// window implements ebiten.Game around one arena.
type window struct {
	game   *asteroids.Game
	camera render.Camera
	width  int
	height int
	ship   geom.Polygon
	debug  *debugui_ebiten.Host
}

func newWindow(game *asteroids.Game, cfg config.AsteroidsConfig, debug bool) *window {
	w := &window{
		game:   game,
		camera: render.Camera{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		width:  int(cfg.Arena.Width),
		height: int(cfg.Arena.Height),
		ship:   geom.Triangle(cfg.Player.Radius*1.6, cfg.Player.Radius*2),
	}

	if debug {
		overlay := debugui.NewOverlay()
		update, fixed := game.Schedulers()
		stats := debugui.NewStatsWindow("Arena", game.Storage(),
			debugui.NamedScheduler{Name: "Update", Scheduler: update},
			debugui.NamedScheduler{Name: "Fixed", Scheduler: fixed},
		)
		overlay.Add(stats.Render)
		w.debug = &debugui_ebiten.Host{
			Backend: debugui_ebiten.NewImguiBackend("Asteroids", w.width, w.height),
			Overlay: overlay,
		}
	} else {
		ebiten.SetWindowSize(w.width, w.height)
		ebiten.SetWindowTitle("Asteroids")
	}
	return w
}

func (w *window) Update() error {
	dt := 1 / float64(ebiten.TPS())
	if w.debug != nil {
		w.debug.Update(dt)
	}

	input := w.input()
	if input.Quit {
		return ebiten.Termination
	}
	w.game.Step(dt, input)
	return nil
}

func (w *window) input() asteroids.Input {
	if w.debug != nil && w.debug.CapturesKeyboard() {
		return asteroids.Input{}
	}
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return asteroids.Input{
		Left:   pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:  pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Thrust: pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Quit:   pressed(ebiten.KeyEscape),
	}
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := w.game.Snapshot()
	cam := w.camera

	cam.StrokeRect(screen, snap.Arena.SpawnArea, 1, colorSpawnArea)
	cam.StrokeRect(screen, snap.Arena.PlayArea, 1, colorPlayArea)
	cam.FillRect(screen, snap.Arena.CenterArea, colorCenter)

	for _, s := range snap.Spawners {
		cam.StrokeCircle(screen, s.Transform.XY(), s.Radius, 2, colorSpawner)
	}

	for _, h := range snap.Hostiles {
		if h.Ship {
			cam.StrokeShape(screen, geom.Triangle(h.Radius*1.6, h.Radius*2).Place(h.Transform), 2, colorShip)
			continue
		}
		cam.StrokeShape(screen, geom.RegularPolygon(h.Radius, h.Sides).Place(h.Transform), 2, colorRock)
	}

	if snap.HasPlayer {
		cam.StrokeShape(screen, w.ship.Place(snap.Player.Transform), 2, colorPlayer)
	}

	for i, line := range hudLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+16*i)
	}

	if w.debug != nil {
		w.debug.Draw(screen)
	}
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.debug != nil {
		w.debug.Layout(outsideWidth, outsideHeight)
	}
	return w.width, w.height
}

// hudLines is the text drawn in the top-left corner.
func hudLines(snap asteroids.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Score %d   Time %.1fs", snap.Score, snap.Session.Elapsed),
		fmt.Sprintf("Health %d/%d", snap.Player.Health.Current, snap.Player.Health.Max),
	}
	for _, s := range snap.Spawners {
		if s.Kind == asteroids.SpawnRocks {
			lines = append(lines, fmt.Sprintf("Core %d   next rock %.1fs", s.Life, s.NextSpawn.Seconds()))
		}
	}
	if snap.Session.GameOver {
		lines = append(lines, fmt.Sprintf("GAME OVER (%s). Press Esc.", snap.Session.Reason))
	}
	return lines
}
