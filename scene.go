package bspmesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis aligned box.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoundsOf returns the box around every triangle vertex, or a zero box for
// no triangles.
func BoundsOf(tris []Triangle) Bounds {
	if len(tris) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: tris[0].Vertices[0], Max: tris[0].Vertices[0]}
	for _, t := range tris {
		for _, p := range t.Vertices {
			for i := 0; i < 3; i++ {
				if p[i] < b.Min[i] {
					b.Min[i] = p[i]
				} else if p[i] > b.Max[i] {
					b.Max[i] = p[i]
				}
			}
		}
	}
	return b
}

func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

func (t Triangle) Centroid() mgl64.Vec3 {
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Mul(1.0 / 3)
}

// SortByDepth returns a copy of tris ordered so the triangles farther from
// the camera come first, ready for painting back to front.
func SortByDepth(tris []Triangle, cam *Camera) []Triangle {
	type byDepth struct {
		tri  Triangle
		dist float64
	}
	items := make([]byDepth, len(tris))
	for i, t := range tris {
		items[i] = byDepth{tri: t, dist: t.Centroid().Sub(cam.Eye).Len()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].dist > items[j].dist
	})

	sorted := make([]Triangle, len(items))
	for i, item := range items {
		sorted[i] = item.tri
	}
	return sorted
}
