package bspmesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Triangulate ear-clips a planar, possibly concave polygon. The polygon is
// projected onto the two axes left after dropping the normal's dominant one.
// Output triangles reuse the polygon's vertex ids and carry its normal.
//
// A polygon with n vertices gives n-2 triangles. If at some point no ear can
// be found (the polygon is degenerate or self-intersecting), the first three
// remaining vertices become a final triangle and clipping stops.
func Triangulate(arena *VertexArena, poly Ngon) []Ngon {
	if len(poly.Vertices) < 3 {
		return nil
	}

	axis, winding := dominantAxis(poly.Normal)
	projected := make(map[VertexID]mgl64.Vec2, len(poly.Vertices))
	for _, id := range poly.Vertices {
		projected[id] = projectDropping(arena.Position(id), axis)
	}

	tris := make([]Ngon, 0, len(poly.Vertices)-2)
	emit := func(a, b, c VertexID) {
		tris = append(tris, Ngon{
			Vertices: []VertexID{a, b, c},
			Normal:   poly.Normal,
		})
	}

	ring := NewClist(poly.Vertices)
	for ring.Len() > 3 {
		ear := findEar(ring, projected, winding)
		if ear < 0 {
			break
		}
		emit(ring.At(ear), ring.At(ear+1), ring.At(ear+2))
		ring.RemoveAt(ear + 1)
	}
	emit(ring.At(0), ring.At(1), ring.At(2))
	return tris
}

// findEar returns the first index i such that ring[i], ring[i+1], ring[i+2]
// turn in the winding direction and enclose no other remaining vertex, or -1.
func findEar(ring *Clist, projected map[VertexID]mgl64.Vec2, winding float64) int {
	n := ring.Len()
	for i := 0; i < n; i++ {
		a := projected[ring.At(i)]
		b := projected[ring.At(i+1)]
		c := projected[ring.At(i+2)]
		if cross2(b.Sub(a), c.Sub(b))*winding <= 0 {
			continue
		}
		empty := true
		for j := 3; j < n; j++ {
			if pointInTriangle(projected[ring.At(i+j)], a, b, c, winding) {
				empty = false
				break
			}
		}
		if empty {
			return i
		}
	}
	return -1
}

// pointInTriangle reports whether p lies strictly inside triangle a, b, c
// wound in the winding direction.
func pointInTriangle(p, a, b, c mgl64.Vec2, winding float64) bool {
	d1 := cross2(b.Sub(a), p.Sub(a)) * winding
	d2 := cross2(c.Sub(b), p.Sub(b)) * winding
	d3 := cross2(a.Sub(c), p.Sub(c)) * winding
	return d1 > 0 && d2 > 0 && d3 > 0
}
