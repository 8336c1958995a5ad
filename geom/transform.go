// Package geom holds the 2D math shared by the game packages: transforms with a z
// rotation, axis-aligned rectangles and convex shape overlap tests.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an entity in the arena. Translation.Z is only used for draw order.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    float32
}

func NewTransform(x, y, z float32) Transform {
	return Transform{Translation: mgl32.Vec3{x, y, z}}
}

// XY drops the draw-order component.
func (t Transform) XY() mgl32.Vec2 {
	return t.Translation.Vec2()
}

// Forward is +Y rotated by the transform's rotation.
func (t Transform) Forward() mgl32.Vec2 {
	return mgl32.Rotate2D(t.Rotation).Mul2x1(mgl32.Vec2{0, 1})
}

// Right is +X rotated by the transform's rotation.
func (t Transform) Right() mgl32.Vec2 {
	return mgl32.Rotate2D(t.Rotation).Mul2x1(mgl32.Vec2{1, 0})
}

// RotateZ turns the transform counter-clockwise by angle radians.
func (t *Transform) RotateZ(angle float32) {
	t.Rotation = wrapAngle(t.Rotation + angle)
}

// Advance moves the transform distance units along Forward.
func (t *Transform) Advance(distance float32) {
	step := t.Forward().Mul(distance)
	t.Translation[0] += step[0]
	t.Translation[1] += step[1]
}

// SetXY moves the transform without touching its draw order.
func (t *Transform) SetXY(p mgl32.Vec2) {
	t.Translation[0] = p[0]
	t.Translation[1] = p[1]
}

func wrapAngle(a float32) float32 {
	const tau = 2 * math.Pi
	w := float32(math.Mod(float64(a), tau))
	if w > math.Pi {
		w -= tau
	} else if w <= -math.Pi {
		w += tau
	}
	return w
}

// ClampVec2 clamps each axis of v into [lo, hi].
func ClampVec2(v, lo, hi mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		mgl32.Clamp(v[0], lo[0], hi[0]),
		mgl32.Clamp(v[1], lo[1], hi[1]),
	}
}
