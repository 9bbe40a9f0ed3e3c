package bspmesh

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Triangle is the export form of a face: three positions and the normal of
// the polygon it came from. Leaf is the traversal index of the leaf holding
// that polygon.
type Triangle struct {
	Vertices [3]mgl64.Vec3
	Normal   mgl64.Vec3
	Leaf     int
}

// Area of the triangle.
func (t Triangle) Area() float64 {
	return triangleArea(t.Vertices[0], t.Vertices[1], t.Vertices[2])
}

// Flatten triangulates every leaf polygon of the tree in traversal order,
// child 0 before child 1. An empty tree gives no triangles.
func (t *Tree) Flatten() []Triangle {
	return FlattenNode(t.Arena, t.Root)
}

// FlattenNode flattens the subtree rooted at node.
func FlattenNode(arena *VertexArena, node Node) []Triangle {
	var tris []Triangle
	leafIndex := -1
	Walk(node, func(n Node, _ int) {
		leaf, ok := n.(*LeafNode)
		if !ok {
			return
		}
		leafIndex++
		for _, poly := range leaf.Contents {
			for _, tri := range Triangulate(arena, poly) {
				points := arena.Positions(tri.Vertices)
				tris = append(tris, Triangle{
					Vertices: [3]mgl64.Vec3{points[0], points[1], points[2]},
					Normal:   poly.Normal,
					Leaf:     leafIndex,
				})
			}
		}
	})
	return tris
}

// TotalArea sums the area of every triangle.
func TotalArea(tris []Triangle) float64 {
	var area float64
	for _, t := range tris {
		area += t.Area()
	}
	return area
}
