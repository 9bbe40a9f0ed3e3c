package bspmesh

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrParallelLine is returned when a clipped edge runs parallel to the
// splitting plane. The splitter only intersects edges whose endpoints were
// classified on opposite sides, so seeing it means an invariant was broken.
var ErrParallelLine = errors.New("bspmesh: line is parallel to plane")

// Plane is the set of points p with Normal·p + Dist == 0. Normal has unit
// length, so PointDist is close to the Euclidean distance.
type Plane struct {
	Normal mgl64.Vec3
	Dist   float64
}

// NewPlaneFromPoint builds the plane with the given unit normal passing
// through point.
func NewPlaneFromPoint(normal, point mgl64.Vec3) Plane {
	return Plane{
		Normal: normal,
		Dist:   -normal.Dot(point),
	}
}

// PlaneFromTri builds the plane through three points, facing the side from
// which p0, p1, p2 appear counter-clockwise.
func PlaneFromTri(p0, p1, p2 mgl64.Vec3) Plane {
	normal := normalize(p1.Sub(p0).Cross(p2.Sub(p0)))
	return NewPlaneFromPoint(normal, p0)
}

// PointDist is positive in front of the plane and negative behind it.
func (p Plane) PointDist(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Dist
}

// Line is a segment stored as origin, unit direction and length.
type Line struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Length    float64
}

func LineFromPoints(a, b mgl64.Vec3) Line {
	d := b.Sub(a)
	return Line{
		Origin:    a,
		Direction: normalize(d),
		Length:    d.Len(),
	}
}

// PointAt returns the point step units along the line.
func (l Line) PointAt(step float64) mgl64.Vec3 {
	return l.Origin.Add(l.Direction.Mul(step))
}

// IntersectLine returns where the line crosses the plane together with amt,
// the crossing's position as a fraction of the line length. amt is not
// clamped to [0, 1].
func (p Plane) IntersectLine(l Line) (float64, mgl64.Vec3, error) {
	divergence := l.Direction.Dot(p.Normal)
	if divergence == 0 {
		return 0, mgl64.Vec3{}, ErrParallelLine
	}
	step := -p.PointDist(l.Origin) / divergence
	return step / l.Length, l.PointAt(step), nil
}
