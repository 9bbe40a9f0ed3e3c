package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/smasonuk/bspmesh"
)

func main() {
	reverse := flag.Bool("reverse", false, "Reverse the winding of DXF faces")
	scale := flag.Float64("scale", 1, "Multiply input positions by this factor")
	terrain := flag.Int("terrain", 0, "Show a generated terrain with this many cells per side instead of a file")
	seed := flag.Int64("seed", 1, "Noise seed for -terrain")
	flag.Parse()

	var soup *bspmesh.Soup
	title := "bspview - "
	switch {
	case *terrain > 0:
		opts := bspmesh.DefaultTerrainOptions()
		opts.Cells = *terrain
		opts.Seed = *seed
		var err error
		soup, err = bspmesh.Terrain(opts)
		if err != nil {
			log.Fatalf("Error generating terrain: %v", err)
		}
		title += fmt.Sprintf("terrain %dx%d", *terrain, *terrain)
	case flag.NArg() == 1:
		fileName := flag.Arg(0)
		log.Printf("Loading %s...", fileName)
		var err error
		soup, err = bspmesh.LoadMeshFile(fileName, *reverse)
		if err != nil {
			log.Fatalf("Error loading mesh: %v", err)
		}
		title += fileName
	default:
		fmt.Fprintln(os.Stderr, "usage: bspview [-reverse] [-scale f] mesh.obj|mesh.dxf")
		fmt.Fprintln(os.Stderr, "       bspview -terrain cells [-seed n]")
		os.Exit(1)
	}
	if *scale > 0 && *scale != 1 {
		soup = soup.Scaled(*scale)
	}

	tree, err := bspmesh.BuildTree(soup, bspmesh.BuildOptions{Logger: log.Default()})
	if err != nil {
		log.Fatalf("Error building tree: %v", err)
	}
	tris := tree.Flatten()
	log.Printf("Showing %d triangles.", len(tris))

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(NewGame(tris, tree.Stats())); err != nil {
		log.Fatal(err)
	}
}
