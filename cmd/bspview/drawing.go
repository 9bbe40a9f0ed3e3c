package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

// fillTriangle draws one solid triangle in screen coordinates.
func fillTriangle(screen *ebiten.Image, xp, yp [3]float32, clr color.RGBA) {
	cr, cg, cb, ca := colorComponents(clr)

	vertices := make([]ebiten.Vertex, 3)
	for i := range vertices {
		vertices[i] = ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteSub, op)
}

// drawTriangleOutline strokes the three edges of a triangle.
func drawTriangleOutline(screen *ebiten.Image, xp, yp [3]float32, strokeWidth float32, clr color.RGBA) {
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	path.LineTo(xp[1], yp[1])
	path.LineTo(xp[2], yp[2])
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	// SrcX and SrcY are 1 so the solid white pixel is sampled.
	cr, cg, cb, ca := colorComponents(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	screen.DrawTriangles(vertices, indices, whiteSub, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}
