package bspmesh

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// TerrainOptions describes a generated height field.
type TerrainOptions struct {
	Cells     int     // grid cells along each side
	Size      float64 // world width of the grid
	Height    float64 // peak height
	Frequency float64 // noise samples per world unit
	Seed      int64
}

func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Cells:     16,
		Size:      20,
		Height:    3,
		Frequency: 0.137,
		Seed:      1,
	}
}

// Terrain builds a Perlin noise height field in the XZ plane, facing +y.
// Every grid cell becomes two triangles, so each polygon is planar however
// rough the surface is. uvs span the unit square over the grid.
func Terrain(opts TerrainOptions) (*Soup, error) {
	if opts.Cells < 1 {
		opts.Cells = 1
	}
	noise := perlin.NewPerlin(2, 2, 3, opts.Seed)
	step := opts.Size / float64(opts.Cells)

	corner := func(i, j int) Vertex {
		x := float64(i) * step
		z := float64(j) * step
		return Vertex{
			Position: mgl64.Vec3{x, opts.Height * noise.Noise2D(x*opts.Frequency, z*opts.Frequency), z},
			UV:       mgl64.Vec2{float64(i) / float64(opts.Cells), float64(j) / float64(opts.Cells)},
		}
	}
	addTri := func(soup *Soup, verts ...Vertex) error {
		points := []mgl64.Vec3{verts[0].Position, verts[1].Position, verts[2].Position}
		return soup.AddPolygon(verts, NewellNormal(points))
	}

	soup := NewSoup()
	for i := 0; i < opts.Cells; i++ {
		for j := 0; j < opts.Cells; j++ {
			p00, p01 := corner(i, j), corner(i, j+1)
			p10, p11 := corner(i+1, j), corner(i+1, j+1)
			if err := addTri(soup, p00, p01, p11); err != nil {
				return nil, fmt.Errorf("terrain cell (%d, %d): %w", i, j, err)
			}
			if err := addTri(soup, p00, p11, p10); err != nil {
				return nil, fmt.Errorf("terrain cell (%d, %d): %w", i, j, err)
			}
		}
	}
	return soup, nil
}
