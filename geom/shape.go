package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/solarlune/resolv"
)

// Shape is a convex collision shape, either a Circle or a Polygon.
type Shape interface {
	// Place moves a shape defined around the origin into world space.
	Place(t Transform) Shape
	// Bounds is the axis-aligned box used for the broad phase.
	Bounds() Rect
}

type Circle struct {
	Center mgl32.Vec2
	Radius float32
}

func NewCircle(radius float32) Circle {
	return Circle{Radius: radius}
}

func (c Circle) Place(t Transform) Shape {
	return Circle{Center: t.XY().Add(c.Center), Radius: c.Radius}
}

func (c Circle) Bounds() Rect {
	r := mgl32.Vec2{c.Radius, c.Radius}
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

func (c Circle) circle() *resolv.Circle {
	return resolv.NewCircle(float64(c.Center[0]), float64(c.Center[1]), float64(c.Radius))
}

// Polygon is convex with points in winding order.
type Polygon struct {
	Points []mgl32.Vec2
}

// RegularPolygon has its first vertex on +Y, the way a mesh with that many sides is built.
func RegularPolygon(radius float32, sides int) Polygon {
	if sides < 3 {
		sides = 3
	}
	points := make([]mgl32.Vec2, sides)
	for i := range points {
		a := float64(i) * 2 * math.Pi / float64(sides)
		points[i] = mgl32.Vec2{
			-radius * float32(math.Sin(a)),
			radius * float32(math.Cos(a)),
		}
	}
	return Polygon{Points: points}
}

// Triangle is an isosceles triangle pointing along +Y.
func Triangle(width, height float32) Polygon {
	return Polygon{Points: []mgl32.Vec2{
		{0, height / 2},
		{-width / 2, -height / 2},
		{width / 2, -height / 2},
	}}
}

func (p Polygon) Place(t Transform) Shape {
	rot := mgl32.Rotate2D(t.Rotation)
	at := t.XY()
	points := make([]mgl32.Vec2, len(p.Points))
	for i, pt := range p.Points {
		points[i] = rot.Mul2x1(pt).Add(at)
	}
	return Polygon{Points: points}
}

func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	r := Rect{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		r.Min = mgl32.Vec2{min(r.Min[0], pt[0]), min(r.Min[1], pt[1])}
		r.Max = mgl32.Vec2{max(r.Max[0], pt[0]), max(r.Max[1], pt[1])}
	}
	return r
}

// convex is the polygon as a resolv shape at the origin, or nil with fewer than three
// points.
func (p Polygon) convex() *resolv.ConvexPolygon {
	if len(p.Points) < 3 {
		return nil
	}
	flat := make([]float64, 0, 2*len(p.Points))
	for _, pt := range p.Points {
		flat = append(flat, float64(pt[0]), float64(pt[1]))
	}
	return resolv.NewConvexPolygon(0, 0, flat)
}
