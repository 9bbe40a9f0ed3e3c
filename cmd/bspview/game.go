package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/bspmesh"
)

const (
	screenWidth  = 960
	screenHeight = 720
)

var (
	backgroundColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	faceColor       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	outlineColor    = color.RGBA{R: 100, G: 100, B: 100, A: 160}
)

// Game shows a flattened triangle list and lets the user orbit around it.
type Game struct {
	tris         []bspmesh.Triangle
	stats        bspmesh.TreeStats
	camera       *bspmesh.Camera
	light        mgl64.Vec3
	lastX, lastY int
	dragged      bool
	wireframe    bool
	leafColours  bool
}

func NewGame(tris []bspmesh.Triangle, stats bspmesh.TreeStats) *Game {
	return &Game{
		tris:        tris,
		stats:       stats,
		camera:      bspmesh.FitCamera(bspmesh.BoundsOf(tris)),
		light:       mgl64.Vec3{180, 260, 140},
		leafColours: true,
	}
}

func (g *Game) Update() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragged = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragged {
		x, y := ebiten.CursorPosition()
		g.camera.Orbit(-float64(x-g.lastX)/200.0, -float64(y-g.lastY)/200.0)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragged = false
	}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camera.Orbit(0.03, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camera.Orbit(-0.03, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camera.Orbit(0, 0.03)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camera.Orbit(0, -0.03)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		if dy > 0 {
			g.camera.Zoom(0.9)
		} else {
			g.camera.Zoom(1.1)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.wireframe = !g.wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.leafColours = !g.leafColours
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.camera = bspmesh.FitCamera(bspmesh.BoundsOf(g.tris))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	project := g.camera.Projector(w, h)
	for _, t := range bspmesh.SortByDepth(g.tris, g.camera) {
		var xs, ys [3]float32
		visible := true
		for i, p := range t.Vertices {
			x, y, _, ok := project(p)
			if !ok {
				visible = false
				break
			}
			xs[i], ys[i] = float32(x), float32(y)
		}
		if !visible {
			continue
		}

		base := faceColor
		if g.leafColours {
			base = bspmesh.LeafPalette(t.Leaf)
		}
		fillTriangle(screen, xs, ys, bspmesh.ShadeColor(base, t.Normal, g.light))
		if g.wireframe {
			drawTriangleOutline(screen, xs, ys, 1.0, outlineColor)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %0.2f\ntriangles: %d  leaves: %d  depth: %d\ndrag/arrows orbit, wheel zoom, W wireframe, S leaf colours, R reset",
		ebiten.ActualFPS(), len(g.tris), g.stats.Leaves, g.stats.MaxDepth))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
