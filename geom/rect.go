package geom

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

// NewRect accepts the corners in any order.
func NewRect(x0, y0, x1, y1 float32) Rect {
	return Rect{
		Min: mgl32.Vec2{min(x0, x1), min(y0, y1)},
		Max: mgl32.Vec2{max(x0, x1), max(y0, y1)},
	}
}

func FromCenterSize(center, size mgl32.Vec2) Rect {
	half := size.Mul(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

func (r Rect) Center() mgl32.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

func (r Rect) Size() mgl32.Vec2 {
	return r.Max.Sub(r.Min)
}

func (r Rect) HalfSize() mgl32.Vec2 {
	return r.Size().Mul(0.5)
}

func (r Rect) Width() float32  { return r.Max[0] - r.Min[0] }
func (r Rect) Height() float32 { return r.Max[1] - r.Min[1] }

// Contains is inclusive of the edges.
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.Min[0] && p[0] <= r.Max[0] && p[1] >= r.Min[1] && p[1] <= r.Max[1]
}

// ContainsRect reports whether o lies fully inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Intersects is true when the interiors overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Min[0] < o.Max[0] && o.Min[0] < r.Max[0] && r.Min[1] < o.Max[1] && o.Min[1] < r.Max[1]
}

// Inset shrinks the rect by d on every side. Negative d grows it. The result never inverts.
func (r Rect) Inset(d float32) Rect {
	c := r.Center()
	half := r.HalfSize()
	half = mgl32.Vec2{max(half[0]-d, 0), max(half[1]-d, 0)}
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Clamp moves p to the nearest point inside r.
func (r Rect) Clamp(p mgl32.Vec2) mgl32.Vec2 {
	return ClampVec2(p, r.Min, r.Max)
}

// Corners returns the corners of a dims-sized rectangle centred on center and rotated by
// angle. At angle 0 they come back as left-top, left-bottom, right-top, right-bottom.
func Corners(center mgl32.Vec2, angle float32, dims mgl32.Vec2) (leftTop, leftBottom, rightTop, rightBottom mgl32.Vec2) {
	v1 := mgl32.Rotate2D(angle).Mul2x1(mgl32.Vec2{1, 0})
	v2 := mgl32.Vec2{-v1[1], v1[0]}
	v1 = v1.Mul(dims[0] / 2)
	v2 = v2.Mul(dims[1] / 2)

	leftTop = center.Sub(v1).Add(v2)
	leftBottom = center.Sub(v1).Sub(v2)
	rightTop = center.Add(v1).Add(v2)
	rightBottom = center.Add(v1).Sub(v2)
	return
}
