package bspmesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrTooFewVertices    = errors.New("bspmesh: polygon has fewer than 3 vertices")
	ErrDegeneratePolygon = errors.New("bspmesh: polygon has no non-collinear vertices")
	ErrIndexOutOfRange   = errors.New("bspmesh: vertex index out of range")
)

// Ngon is a planar, simple polygon. Its vertices are wound consistently with
// Normal.
type Ngon struct {
	Vertices []VertexID
	Normal   mgl64.Vec3
}

// Plane derives the polygon's plane from its first three vertices. If those
// are collinear the first non-collinear triple (0, i, i+1) is used instead.
func (n Ngon) Plane(arena *VertexArena) (Plane, error) {
	points := arena.Positions(n.Vertices)
	if len(points) < 3 {
		return Plane{}, ErrTooFewVertices
	}
	for i := 1; i+1 < len(points); i++ {
		cross := points[i].Sub(points[0]).Cross(points[i+1].Sub(points[0]))
		if cross.Len() >= degenerateLength {
			return PlaneFromTri(points[0], points[i], points[i+1]), nil
		}
	}
	return Plane{}, ErrDegeneratePolygon
}

// Area sums a fan of triangles around the first vertex, which is exact for
// convex polygons.
func (n Ngon) Area(arena *VertexArena) float64 {
	points := arena.Positions(n.Vertices)
	var area float64
	for i := 1; i+1 < len(points); i++ {
		area += triangleArea(points[0], points[i], points[i+1])
	}
	return area
}

// get midpoint of the face
func (n Ngon) Centroid(arena *VertexArena) mgl64.Vec3 {
	points := arena.Positions(n.Vertices)
	var sum mgl64.Vec3
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// Soup is an unordered collection of polygons sharing one vertex arena. It is
// the input of the tree builder.
type Soup struct {
	Arena    *VertexArena
	Polygons []Ngon
}

func NewSoup() *Soup {
	return &Soup{Arena: NewVertexArena()}
}

// AddPolygon stores a polygon, sharing identical vertices with earlier ones.
func (s *Soup) AddPolygon(vertices []Vertex, normal mgl64.Vec3) error {
	if len(vertices) < 3 {
		return fmt.Errorf("polygon %d: %w", len(s.Polygons), ErrTooFewVertices)
	}
	ids := make([]VertexID, len(vertices))
	for i, v := range vertices {
		ids[i] = s.Arena.AddUnique(v)
	}
	s.Polygons = append(s.Polygons, Ngon{Vertices: ids, Normal: normal})
	return nil
}

// Validate checks every polygon has at least three vertices that exist in the
// arena.
func (s *Soup) Validate() error {
	for i, p := range s.Polygons {
		if len(p.Vertices) < 3 {
			return fmt.Errorf("polygon %d: %w", i, ErrTooFewVertices)
		}
		for _, id := range p.Vertices {
			if !s.Arena.valid(id) {
				return fmt.Errorf("polygon %d: vertex %d: %w", i, id, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Scaled returns a copy of the soup with every position multiplied by f. Vertex
// ids are preserved, and polygons added to the copy share its vertices.
func (s *Soup) Scaled(f float64) *Soup {
	out := &Soup{
		Arena:    NewVertexArena(),
		Polygons: make([]Ngon, len(s.Polygons)),
	}
	for i := 0; i < s.Arena.Len(); i++ {
		v := s.Arena.Vertex(VertexID(i))
		v.Position = v.Position.Mul(f)
		out.Arena.addIndexed(v)
	}
	for i, p := range s.Polygons {
		out.Polygons[i] = Ngon{
			Vertices: append([]VertexID(nil), p.Vertices...),
			Normal:   p.Normal,
		}
	}
	return out
}

// Area is the summed area of every polygon.
func (s *Soup) Area() float64 {
	var area float64
	for _, p := range s.Polygons {
		area += p.Area(s.Arena)
	}
	return area
}
