package bspmesh

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ShadeColor darkens base according to how directly a face with the given
// normal faces the light. Faces are lit from both sides.
func ShadeColor(base color.RGBA, normal, lightDir mgl64.Vec3) color.RGBA {
	// minimum brightness for any face
	const ambientLight = 0.65
	const directLight = 1.0 - ambientLight

	diffuse := math.Abs(normalize(normal).Dot(normalize(lightDir)))
	brightness := ambientLight + diffuse*directLight

	// A brightness of 1.0 leaves the colour alone, 0.0 subtracts 240.
	c := 240 - int(brightness*240)

	const min = 7
	return color.RGBA{
		R: uint8(clamp(int(base.R)-c, min, 255)),
		G: uint8(clamp(int(base.G)-c, min, 255)),
		B: uint8(clamp(int(base.B)-c, min, 255)),
		A: base.A,
	}
}

// LeafPalette returns a distinct colour for the i-th leaf of a tree.
func LeafPalette(i int) color.RGBA {
	palette := []color.RGBA{
		{R: 230, G: 80, B: 70, A: 255},
		{R: 80, G: 170, B: 90, A: 255},
		{R: 70, G: 120, B: 220, A: 255},
		{R: 230, G: 180, B: 60, A: 255},
		{R: 160, G: 90, B: 200, A: 255},
		{R: 60, G: 190, B: 200, A: 255},
	}
	return palette[i%len(palette)]
}
