package bspmesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PlaneThickness is the on-plane tolerance in world units. Meshes built at a
// very different scale should be rescaled with Soup.Scaled first.
const PlaneThickness = 0.02

// Classification says where a polygon lies relative to a plane.
type Classification int

const (
	OnPlane Classification = iota
	InFront
	Behind
	Spanning
)

func (c Classification) String() string {
	switch c {
	case OnPlane:
		return "on-plane"
	case InFront:
		return "in-front"
	case Behind:
		return "behind"
	case Spanning:
		return "spanning"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

type pointSide int

const (
	sideOn pointSide = iota
	sideFront
	sideBehind
)

func classifyPoint(d float64) pointSide {
	switch {
	case math.Abs(d) < PlaneThickness:
		return sideOn
	case d < 0:
		return sideBehind
	default:
		return sideFront
	}
}

// SplitResult is the outcome of clipping one polygon against a plane. Front
// and Back are only set for Spanning polygons. Portal lists, in boundary
// order, the vertices where the polygon touches or crosses the plane; for an
// OnPlane polygon that is every vertex.
type SplitResult struct {
	Class  Classification
	Front  Ngon
	Back   Ngon
	Portal []VertexID
}

// SplitPolygon classifies poly against plane and cuts it in two when it
// crosses the plane. Each crossing point becomes one new vertex in arena,
// shared by both halves, with its texture coordinate interpolated by the same
// parameter as its position.
func SplitPolygon(arena *VertexArena, poly Ngon, plane Plane) (SplitResult, error) {
	n := len(poly.Vertices)
	if n < 3 {
		return SplitResult{}, ErrTooFewVertices
	}

	verts := make([]Vertex, n)
	sides := make([]pointSide, n)
	allOn := true
	for i, id := range poly.Vertices {
		verts[i] = arena.Vertex(id)
		sides[i] = classifyPoint(plane.PointDist(verts[i].Position))
		if sides[i] != sideOn {
			allOn = false
		}
	}
	if allOn {
		return SplitResult{
			Class:  OnPlane,
			Portal: append([]VertexID(nil), poly.Vertices...),
		}, nil
	}

	// start from the side the boundary is on just before wrapping to index 0
	state := sideOn
	for i := n - 1; i >= 0; i-- {
		if sides[i] != sideOn {
			state = sides[i]
			break
		}
	}

	var front, behind, portal []VertexID
	prev := n - 1
	for i := 0; i < n; i++ {
		if sides[i] == sideOn {
			portal = append(portal, poly.Vertices[i])
		} else if sides[i] != state {
			amt, point, err := plane.IntersectLine(LineFromPoints(verts[prev].Position, verts[i].Position))
			if err != nil {
				return SplitResult{}, fmt.Errorf("clip edge %d-%d: %w", prev, i, err)
			}
			id := arena.Add(Vertex{
				Position: point,
				UV:       lerpUV(verts[prev].UV, verts[i].UV, amt),
			})
			front = append(front, id)
			behind = append(behind, id)
			portal = append(portal, id)
			state = sides[i]
		}
		if state == sideBehind {
			behind = append(behind, poly.Vertices[i])
		} else {
			front = append(front, poly.Vertices[i])
		}
		prev = i
	}

	switch {
	case len(front) == 0:
		return SplitResult{Class: Behind, Portal: portal}, nil
	case len(behind) == 0:
		return SplitResult{Class: InFront, Portal: portal}, nil
	}
	return SplitResult{
		Class:  Spanning,
		Front:  Ngon{Vertices: front, Normal: poly.Normal},
		Back:   Ngon{Vertices: behind, Normal: poly.Normal},
		Portal: portal,
	}, nil
}

func lerpUV(a, b mgl64.Vec2, amt float64) mgl64.Vec2 {
	return a.Add(b.Sub(a).Mul(amt))
}
