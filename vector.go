package bspmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateLength is the smallest cross product magnitude still treated as a
// real direction.
const degenerateLength = 1e-12

// normalize returns v scaled to unit length, or the zero vector when v has no
// usable length. mgl64's Normalize divides by zero in that case.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < degenerateLength {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// cross2 is the z component of the cross product of two 2D vectors.
func cross2(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// NewellNormal computes the unit normal of a planar polygon from all of its
// points, so collinear leading vertices don't matter.
func NewellNormal(points []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range points {
		cur := points[i]
		next := points[(i+1)%len(points)]
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	return normalize(n)
}

// dominantAxis returns the index of the largest absolute component of n and
// the sign of that component.
func dominantAxis(n mgl64.Vec3) (int, float64) {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(n[i]) > math.Abs(n[axis]) {
			axis = i
		}
	}
	if n[axis] < 0 {
		return axis, -1
	}
	return axis, 1
}

// projectDropping projects p onto the plane of the two axes that remain after
// dropping axis. The remaining axes are taken in cyclic order so a polygon
// wound counter-clockwise around +axis keeps a positive signed area.
func projectDropping(p mgl64.Vec3, axis int) mgl64.Vec2 {
	return mgl64.Vec2{p[(axis+1)%3], p[(axis+2)%3]}
}

// triangleArea is the area of the triangle a, b, c.
func triangleArea(a, b, c mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}
