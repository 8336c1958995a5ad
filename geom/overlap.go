package geom

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/solarlune/resolv"
)

// Overlap runs a separating-axis test on two world-space shapes. Shapes that only touch
// do not overlap.
func Overlap(a, b Shape) bool {
	if !a.Bounds().Intersects(b.Bounds()) {
		return false
	}

	switch a := a.(type) {
	case Circle:
		switch b := b.(type) {
		case Circle:
			return circles(a, b)
		case Polygon:
			return circlePolygon(a, b)
		}
	case Polygon:
		switch b := b.(type) {
		case Circle:
			return circlePolygon(b, a)
		case Polygon:
			pa, pb := a.convex(), b.convex()
			if pa == nil || pb == nil {
				return false
			}
			return overlapsOn(pa, pb, append(pa.SATAxes(), pb.SATAxes()...))
		}
	}
	return false
}

func circles(a, b Circle) bool {
	between := b.Center.Sub(a.Center)
	if between.LenSqr() == 0 {
		return a.Radius+b.Radius > 0
	}
	return overlapsOn(a.circle(), b.circle(), []resolv.Vector{toVector(between)})
}

func circlePolygon(c Circle, p Polygon) bool {
	poly := p.convex()
	if poly == nil {
		return false
	}

	closest := p.Points[0]
	best := closest.Sub(c.Center).LenSqr()
	for _, pt := range p.Points[1:] {
		if d := pt.Sub(c.Center).LenSqr(); d < best {
			closest, best = pt, d
		}
	}

	axes := poly.SATAxes()
	if best > 0 {
		axes = append(axes, toVector(closest.Sub(c.Center)))
	}
	return overlapsOn(c.circle(), poly, axes)
}

type projector interface {
	Project(axis resolv.Vector) resolv.Projection
}

// overlapsOn reports whether no axis in axes separates a and b.
func overlapsOn(a, b projector, axes []resolv.Vector) bool {
	for _, axis := range axes {
		if axis.X == 0 && axis.Y == 0 {
			continue
		}
		if !a.Project(axis).IsOverlapping(b.Project(axis)) {
			return false
		}
	}
	return true
}

func toVector(v mgl32.Vec2) resolv.Vector {
	return resolv.NewVector(float64(v[0]), float64(v[1]))
}
