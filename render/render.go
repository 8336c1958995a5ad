// Package render draws geom shapes onto Ebiten images. World space is centered on
// the screen with y pointing up.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/skirmish/geom"
)

// Camera maps world coordinates onto a screen of Width by Height pixels.
type Camera struct {
	Width  float32
	Height float32
}

func (c Camera) ToScreen(p mgl32.Vec2) (float32, float32) {
	return p[0] + c.Width/2, c.Height/2 - p[1]
}

// RectToScreen returns the top-left corner and size of r on screen.
func (c Camera) RectToScreen(r geom.Rect) (x, y, w, h float32) {
	x, y = c.ToScreen(mgl32.Vec2{r.Min[0], r.Max[1]})
	return x, y, r.Width(), r.Height()
}

func (c Camera) StrokeRect(dst *ebiten.Image, r geom.Rect, width float32, clr color.Color) {
	x, y, w, h := c.RectToScreen(r)
	vector.StrokeRect(dst, x, y, w, h, width, clr, true)
}

func (c Camera) FillRect(dst *ebiten.Image, r geom.Rect, clr color.Color) {
	x, y, w, h := c.RectToScreen(r)
	vector.DrawFilledRect(dst, x, y, w, h, clr, true)
}

func (c Camera) StrokeCircle(dst *ebiten.Image, center mgl32.Vec2, radius, width float32, clr color.Color) {
	x, y := c.ToScreen(center)
	vector.StrokeCircle(dst, x, y, radius, width, clr, true)
}

// StrokePolygon outlines the closed polygon through points.
func (c Camera) StrokePolygon(dst *ebiten.Image, points []mgl32.Vec2, width float32, clr color.Color) {
	for i, p := range points {
		q := points[(i+1)%len(points)]
		x0, y0 := c.ToScreen(p)
		x1, y1 := c.ToScreen(q)
		vector.StrokeLine(dst, x0, y0, x1, y1, width, clr, true)
	}
}

// StrokeShape outlines a placed circle or polygon.
func (c Camera) StrokeShape(dst *ebiten.Image, shape geom.Shape, width float32, clr color.Color) {
	switch s := shape.(type) {
	case geom.Circle:
		c.StrokeCircle(dst, s.Center, s.Radius, width, clr)
	case geom.Polygon:
		c.StrokePolygon(dst, s.Points, width, clr)
	}
}

var named = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"black":  {0, 0, 0, 255},
	"silver": {192, 192, 192, 255},
	"blue":   {70, 110, 230, 255},
	"red":    {220, 60, 60, 255},
	"green":  {60, 190, 90, 255},
	"purple": {150, 80, 200, 255},
	"brown":  {140, 90, 50, 255},
	"yellow": {235, 210, 60, 255},
	"orange": {240, 140, 40, 255},
	"gray":   {128, 128, 128, 255},
}

// ParseColor accepts a color name or a #rrggbb hex triple.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}

	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("render: unknown color %q", s)
}
