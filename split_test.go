package bspmesh

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// soupOf builds a soup holding one polygon per vertex list.
func soupOf(t *testing.T, polygons ...[]Vertex) *Soup {
	t.Helper()
	soup := NewSoup()
	for i, verts := range polygons {
		points := make([]mgl64.Vec3, len(verts))
		for j, v := range verts {
			points[j] = v.Position
		}
		if err := soup.AddPolygon(verts, NewellNormal(points)); err != nil {
			t.Fatalf("AddPolygon(%d) error = %v", i, err)
		}
	}
	return soup
}

func positions(points ...mgl64.Vec3) []Vertex {
	verts := make([]Vertex, len(points))
	for i, p := range points {
		verts[i] = Vertex{Position: p}
	}
	return verts
}

func TestSplitPolygonSquareThroughMidpoint(t *testing.T) {
	soup := soupOf(t, squareVertices(0, 1))
	square := soup.Polygons[0]
	plane := NewPlaneFromPoint(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})

	res, err := SplitPolygon(soup.Arena, square, plane)
	if err != nil {
		t.Fatalf("SplitPolygon() error = %v", err)
	}
	if res.Class != Spanning {
		t.Fatalf("Class = %v, want %v", res.Class, Spanning)
	}
	if soup.Arena.Len() != 6 {
		t.Fatalf("arena has %d vertices, want 6", soup.Arena.Len())
	}

	// both new vertices lie on the midline and are shared by the halves
	bottom, top := VertexID(4), VertexID(5)
	wantFront := []VertexID{bottom, 1, 2, top}
	wantBack := []VertexID{0, bottom, top, 3}
	if !slices.Equal(res.Front.Vertices, wantFront) {
		t.Errorf("Front = %v, want %v", res.Front.Vertices, wantFront)
	}
	if !slices.Equal(res.Back.Vertices, wantBack) {
		t.Errorf("Back = %v, want %v", res.Back.Vertices, wantBack)
	}
	if !slices.Equal(res.Portal, []VertexID{bottom, top}) {
		t.Errorf("Portal = %v, want %v", res.Portal, []VertexID{bottom, top})
	}

	testCases := []struct {
		id  VertexID
		pos mgl64.Vec3
		uv  mgl64.Vec2
	}{
		{bottom, mgl64.Vec3{0, -1, 0}, mgl64.Vec2{0.5, 0}},
		{top, mgl64.Vec3{0, 1, 0}, mgl64.Vec2{0.5, 1}},
	}
	for _, tc := range testCases {
		v := soup.Arena.Vertex(tc.id)
		if !vecAlmostEqual(v.Position, tc.pos) {
			t.Errorf("vertex %d position = %v, want %v", tc.id, v.Position, tc.pos)
		}
		if !almostEqual(v.UV[0], tc.uv[0]) || !almostEqual(v.UV[1], tc.uv[1]) {
			t.Errorf("vertex %d uv = %v, want %v", tc.id, v.UV, tc.uv)
		}
	}

	for _, half := range []Ngon{res.Front, res.Back} {
		if half.Normal != square.Normal {
			t.Errorf("half normal = %v, want %v", half.Normal, square.Normal)
		}
		tris := Triangulate(soup.Arena, half)
		if len(tris) != 2 {
			t.Errorf("half %v gave %d triangles, want 2", half.Vertices, len(tris))
		}
		if !almostEqual(half.Area(soup.Arena), 2) {
			t.Errorf("half %v area = %v, want 2", half.Vertices, half.Area(soup.Arena))
		}
	}
}

func TestSplitPolygonInterpolatesOffCentre(t *testing.T) {
	quad := []Vertex{
		{Position: mgl64.Vec3{-1, -1, 0}, UV: mgl64.Vec2{0.2, 0.9}},
		{Position: mgl64.Vec3{1, -1, 0}, UV: mgl64.Vec2{0.7, 0.1}},
		{Position: mgl64.Vec3{1, 1, 0}, UV: mgl64.Vec2{1, 0.5}},
		{Position: mgl64.Vec3{-1, 1, 0}, UV: mgl64.Vec2{0.4, 0.3}},
	}
	soup := soupOf(t, quad)
	plane := NewPlaneFromPoint(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-0.4, 0, 0})

	res, err := SplitPolygon(soup.Arena, soup.Polygons[0], plane)
	if err != nil {
		t.Fatalf("SplitPolygon() error = %v", err)
	}
	if res.Class != Spanning {
		t.Fatalf("Class = %v, want %v", res.Class, Spanning)
	}

	testCases := []struct {
		id      VertexID
		a, b    int
		wantAmt float64
	}{
		{4, 0, 1, 0.3},
		{5, 2, 3, 0.7},
	}
	for _, tc := range testCases {
		a, b := quad[tc.a], quad[tc.b]
		amt, _, err := plane.IntersectLine(LineFromPoints(a.Position, b.Position))
		if err != nil {
			t.Fatalf("IntersectLine() error = %v", err)
		}
		if !almostEqual(amt, tc.wantAmt) {
			t.Errorf("edge %d-%d amt = %v, want %v", tc.a, tc.b, amt, tc.wantAmt)
		}

		got := soup.Arena.Vertex(tc.id)
		wantPos := a.Position.Add(b.Position.Sub(a.Position).Mul(amt))
		wantUV := a.UV.Add(b.UV.Sub(a.UV).Mul(amt))
		if !vecAlmostEqual(got.Position, wantPos) {
			t.Errorf("vertex %d position = %v, want %v", tc.id, got.Position, wantPos)
		}
		if !almostEqual(got.UV[0], wantUV[0]) || !almostEqual(got.UV[1], wantUV[1]) {
			t.Errorf("vertex %d uv = %v, want %v", tc.id, got.UV, wantUV)
		}
	}
	if !slices.Equal(res.Portal, []VertexID{4, 5}) {
		t.Errorf("Portal = %v, want [4 5]", res.Portal)
	}
}

func TestSplitPolygonClassification(t *testing.T) {
	plane := NewPlaneFromPoint(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{})

	testCases := []struct {
		name   string
		points []mgl64.Vec3
		class  Classification
		portal int
	}{
		{
			name:   "Fully in front",
			points: []mgl64.Vec3{{1, 0, 0}, {3, 0, 0}, {3, 2, 0}},
			class:  InFront,
		},
		{
			name:   "Fully behind",
			points: []mgl64.Vec3{{-1, 0, 0}, {-3, 2, 0}, {-3, 0, 0}},
			class:  Behind,
		},
		{
			name:   "Lying on the plane",
			points: []mgl64.Vec3{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
			class:  OnPlane,
			portal: 4,
		},
		{
			name:   "Within plane thickness",
			points: []mgl64.Vec3{{0.01, 0, 0}, {-0.01, 1, 0}, {0.015, 1, 1}},
			class:  OnPlane,
			portal: 3,
		},
		{
			name:   "Touching with one vertex",
			points: []mgl64.Vec3{{0, 0, 0}, {1, -1, 0}, {1, 1, 0}},
			class:  InFront,
			portal: 1,
		},
		{
			name:   "Touching along an edge",
			points: []mgl64.Vec3{{0, 0, 0}, {0, 0, 1}, {-1, 0, 1}},
			class:  Behind,
			portal: 2,
		},
		{
			name:   "Crossing",
			points: []mgl64.Vec3{{-1, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			class:  Spanning,
			portal: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			soup := soupOf(t, positions(tc.points...))
			before := soup.Arena.Len()

			res, err := SplitPolygon(soup.Arena, soup.Polygons[0], plane)
			if err != nil {
				t.Fatalf("SplitPolygon() error = %v", err)
			}
			if res.Class != tc.class {
				t.Errorf("Class = %v, want %v", res.Class, tc.class)
			}
			if len(res.Portal) != tc.portal {
				t.Errorf("Portal = %v, want %d vertices", res.Portal, tc.portal)
			}
			if tc.class != Spanning {
				if soup.Arena.Len() != before {
					t.Errorf("arena grew from %d to %d for an unsplit polygon", before, soup.Arena.Len())
				}
				if res.Front.Vertices != nil || res.Back.Vertices != nil {
					t.Errorf("unsplit polygon returned halves %v / %v", res.Front.Vertices, res.Back.Vertices)
				}
			}
		})
	}
}

func TestSplitPolygonPreservesArea(t *testing.T) {
	soup := soupOf(t, positions(
		mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{5, 2, 0}, mgl64.Vec3{2, 4, 0}, mgl64.Vec3{-1, 2, 0},
	))
	poly := soup.Polygons[0]
	plane := NewPlaneFromPoint(mgl64.Vec3{1, 1, 0}.Normalize(), mgl64.Vec3{2.2, 1.1, 0})

	res, err := SplitPolygon(soup.Arena, poly, plane)
	if err != nil {
		t.Fatalf("SplitPolygon() error = %v", err)
	}
	if res.Class != Spanning {
		t.Fatalf("Class = %v, want %v", res.Class, Spanning)
	}

	got := res.Front.Area(soup.Arena) + res.Back.Area(soup.Arena)
	if want := poly.Area(soup.Arena); !almostEqual(got, want) {
		t.Errorf("halves cover %v, want %v", got, want)
	}
	for _, id := range res.Front.Vertices {
		if d := plane.PointDist(soup.Arena.Position(id)); d < -PlaneThickness {
			t.Errorf("front vertex %d is %v behind the plane", id, d)
		}
	}
	for _, id := range res.Back.Vertices {
		if d := plane.PointDist(soup.Arena.Position(id)); d > PlaneThickness {
			t.Errorf("back vertex %d is %v in front of the plane", id, d)
		}
	}
}

func TestSplitPolygonTooFewVertices(t *testing.T) {
	arena := NewVertexArena()
	poly := Ngon{Vertices: []VertexID{arena.Add(Vertex{}), arena.Add(Vertex{Position: mgl64.Vec3{1, 0, 0}})}}
	if _, err := SplitPolygon(arena, poly, Plane{Normal: mgl64.Vec3{1, 0, 0}}); err == nil {
		t.Errorf("SplitPolygon() of a two vertex polygon succeeded")
	}
}

func TestClassificationString(t *testing.T) {
	testCases := []struct {
		class Classification
		want  string
	}{
		{OnPlane, "on-plane"},
		{InFront, "in-front"},
		{Behind, "behind"},
		{Spanning, "spanning"},
		{Classification(9), "Classification(9)"},
	}
	for _, tc := range testCases {
		if got := tc.class.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
