package bspmesh

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// PreviewOptions controls RenderPreview.
type PreviewOptions struct {
	Size        int // output width and height in pixels
	Supersample int // render at Size*Supersample, then scale down
	// Camera defaults to FitCamera around the triangles.
	Camera      *Camera
	Color       color.RGBA
	Background  color.RGBA
	LightDir    mgl64.Vec3
	ColorLeaves bool // colour each triangle by the leaf it came from
}

func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Size:        512,
		Supersample: 2,
		Color:       color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Background:  color.RGBA{R: 24, G: 24, B: 32, A: 255},
		LightDir:    mgl64.Vec3{180, 260, 140},
	}
}

// RenderPreview paints tris back to front into a square image.
func RenderPreview(tris []Triangle, opts PreviewOptions) *image.RGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	size := opts.Size * ss

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	cam := opts.Camera
	if cam == nil {
		cam = FitCamera(BoundsOf(tris))
	}
	project := cam.Projector(size, size)

	z := vector.NewRasterizer(size, size)
	for _, t := range SortByDepth(tris, cam) {
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

		base := opts.Color
		if opts.ColorLeaves {
			base = LeafPalette(t.Leaf)
		}
		z.Reset(size, size)
		z.MoveTo(xs[0], ys[0])
		z.LineTo(xs[1], ys[1])
		z.LineTo(xs[2], ys[2])
		z.ClosePath()
		z.Draw(canvas, canvas.Bounds(), image.NewUniform(ShadeColor(base, t.Normal, opts.LightDir)), image.Point{})
	}

	if ss == 1 {
		return canvas
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return out
}

// EncodePreview writes img as png, webp or tga.
func EncodePreview(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("unknown preview format %q", format)
}

// SavePreview writes img to fileName, picking the format from its extension.
func SavePreview(fileName string, img image.Image) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch format {
	case "png", "webp", "tga":
	default:
		return fmt.Errorf("unknown preview format for %s", fileName)
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create preview %s: %w", fileName, err)
	}

	err = EncodePreview(file, img, format)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("error writing preview %s: %w", fileName, err)
	}
	return nil
}
