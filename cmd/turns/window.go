package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/skirmish/geom"
	"github.com/plus3/skirmish/render"
	"github.com/plus3/skirmish/turns"
)

const (
	screenWidth  = 1200
	screenHeight = 640

	partyX   = -400
	enemyX   = 400
	rowPitch = 40
	logLines = 8
)

var (
	colorBackground = color.RGBA{20, 20, 28, 255}
	colorActive     = color.RGBA{255, 230, 90, 255}
	colorDefeated   = color.RGBA{70, 70, 70, 255}
)

var keyEvents = map[ebiten.Key]turns.TurnEvent{
	ebiten.KeyEnter:  turns.StartBattle(),
	ebiten.KeyDigit1: turns.PlayerAction(turns.AttackAction()),
	ebiten.KeyDigit2: turns.PlayerAction(turns.SpellAction(turns.ElementFire)),
	ebiten.KeyDigit3: turns.PlayerAction(turns.DefendAction()),
	ebiten.KeyDigit4: turns.PlayerAction(turns.PassAction()),
}

type window struct {
	battle  *turns.Battle
	camera  render.Camera
	colors  map[string]color.RGBA
	started bool
}

func newWindow(battle *turns.Battle) (*window, error) {
	w := &window{
		battle: battle,
		camera: render.Camera{Width: screenWidth, Height: screenHeight},
		colors: map[string]color.RGBA{},
	}
	for _, p := range battle.Snapshot().Participants {
		c, err := render.ParseColor(p.Appearance.Color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		w.colors[p.Name] = c
	}
	return w, nil
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, event := range keyEvents {
		if inpututil.IsKeyJustPressed(key) {
			w.battle.Send(event)
			w.started = w.started || event.Kind == turns.EventStartBattle
		}
	}
	w.battle.Step(1 / float64(ebiten.TPS()))
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	snap := w.battle.Snapshot()

	for _, p := range placeParticipants(snap.Participants) {
		clr := w.colors[p.Name]
		if !p.InBattle {
			clr = colorDefeated
		}
		w.camera.FillRect(screen, p.Rect, clr)
		if p.Active {
			w.camera.StrokeRect(screen, p.Rect.Inset(-3), 2, colorActive)
		}

		x, y, _, _ := w.camera.RectToScreen(p.Rect)
		label := fmt.Sprintf("%s %d/%d", p.Name, p.Health.Current, p.Health.Max)
		if p.Defending {
			label += " [def]"
		}
		if p.Team == turns.TeamPlayer {
			ebitenutil.DebugPrintAt(screen, label, int(x)-len(label)*6-8, int(y))
		} else {
			ebitenutil.DebugPrintAt(screen, label, int(x+p.Rect.Width())+8, int(y))
		}
	}

	for i, line := range statusLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+16*i)
	}
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

type slot struct {
	turns.ParticipantState
	Rect geom.Rect
}

// placeParticipants stacks each team in its own column, party on the left, one row per
// member in spawn order.
func placeParticipants(participants []turns.ParticipantState) []slot {
	rows := map[turns.Team]int{}
	slots := make([]slot, 0, len(participants))
	for _, p := range participants {
		x := float32(partyX)
		if p.Team == turns.TeamEnemy {
			x = enemyX
		}
		y := float32(rowPitch * rows[p.Team])
		rows[p.Team]++

		size := mgl32.Vec2{p.Appearance.Width, p.Appearance.Height}
		slots = append(slots, slot{
			ParticipantState: p,
			Rect:             geom.FromCenterSize(mgl32.Vec2{x, y}, size),
		})
	}
	return slots
}

// statusLines is the text in the top-left corner: round, whose turn, recent log.
func statusLines(snap turns.Snapshot) []string {
	switch {
	case !snap.Started:
		return []string{"Press Enter to start the battle."}
	case snap.Over:
		lines := []string{fmt.Sprintf("Battle over after %d rounds: %s team wins. Esc to quit.", snap.Round, snap.Winner)}
		return append(lines, tail(snap.Log, logLines)...)
	}

	turn := "waiting"
	if snap.Active != "" {
		turn = fmt.Sprintf("%s (%s) %.1fs", snap.Active, snap.Side, snap.TimeLeft.Seconds())
	}
	lines := []string{
		fmt.Sprintf("Round %d   Turn: %s", snap.Round, turn),
		"1 attack  2 fire spell  3 defend  4 pass",
	}
	return append(lines, tail(snap.Log, logLines)...)
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
