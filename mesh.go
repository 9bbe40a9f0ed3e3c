package bspmesh

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// VertexID addresses one vertex in a VertexArena.
type VertexID int

// Vertex is a position with its texture coordinate. Vertices never change
// once they are in an arena.
type Vertex struct {
	Position mgl64.Vec3
	UV       mgl64.Vec2
}

// VertexArena owns every vertex of a mesh. Polygons refer to vertices by id,
// so a vertex shared by several polygons is stored once. It is safe for
// concurrent use.
type VertexArena struct {
	mu       sync.RWMutex
	vertices []Vertex
	index    map[Vertex]VertexID
}

func NewVertexArena() *VertexArena {
	return &VertexArena{
		vertices: make([]Vertex, 0, 64),
		index:    make(map[Vertex]VertexID),
	}
}

// Add stores v as a new vertex, even if an identical one exists.
func (a *VertexArena) Add(v Vertex) VertexID {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vertices = append(a.vertices, v)
	return VertexID(len(a.vertices) - 1)
}

// AddUnique returns the id of an identical vertex added earlier through
// AddUnique, or stores v.
func (a *VertexArena) AddUnique(v Vertex) VertexID {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, found := a.index[v]; found {
		return id
	}
	a.vertices = append(a.vertices, v)
	id := VertexID(len(a.vertices) - 1)
	a.index[v] = id
	return id
}

// addIndexed always stores v but, unlike Add, lets later AddUnique calls
// find it. The first of several identical vertices keeps the index entry.
func (a *VertexArena) addIndexed(v Vertex) VertexID {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vertices = append(a.vertices, v)
	id := VertexID(len(a.vertices) - 1)
	if _, found := a.index[v]; !found {
		a.index[v] = id
	}
	return id
}

func (a *VertexArena) Vertex(id VertexID) Vertex {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.vertices[id]
}

func (a *VertexArena) Position(id VertexID) mgl64.Vec3 {
	return a.Vertex(id).Position
}

// Positions resolves a list of ids in one lock.
func (a *VertexArena) Positions(ids []VertexID) []mgl64.Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	points := make([]mgl64.Vec3, len(ids))
	for i, id := range ids {
		points[i] = a.vertices[id].Position
	}
	return points
}

func (a *VertexArena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.vertices)
}

func (a *VertexArena) valid(id VertexID) bool {
	return id >= 0 && int(id) < a.Len()
}
