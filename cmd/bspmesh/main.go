package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/smasonuk/bspmesh"
	"github.com/smasonuk/bspmesh/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("in", "", "Input mesh (.obj or .dxf)")
	output := flag.String("out", "", "Output STL file (default: input name with .stl)")
	ascii := flag.Bool("ascii", false, "Write ASCII STL instead of binary")
	name := flag.String("name", "", "STL solid name / header (default: bspmesh)")
	scale := flag.Float64("scale", 0, "Multiply input positions by this factor (default: 1)")
	reverse := flag.Bool("reverse", false, "Reverse the winding of DXF faces")
	parallel := flag.Bool("parallel", false, "Build independent subtrees concurrently")
	pdepth := flag.Int("pdepth", 0, "Tree levels that fork a goroutine with -parallel (default: 4)")
	preview := flag.String("preview", "", "Also render a preview image (.png, .webp or .tga)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 512)")
	dump := flag.Bool("dump", false, "Print the tree outline to stdout")
	verbose := flag.Bool("v", false, "Log build progress")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *input == "" && flag.NArg() > 0 {
		*input = flag.Arg(0)
	}
	cfg.Resolve(config.Flags{
		Input:         *input,
		Output:        *output,
		Preview:       *preview,
		Scale:         *scale,
		ReverseDXF:    *reverse,
		Parallel:      *parallel,
		ParallelDepth: *pdepth,
		DumpTree:      *dump,
		ASCII:         *ascii,
		SolidName:     *name,
		PreviewSize:   *size,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, verbose bool) error {
	start := time.Now()

	soup, err := bspmesh.LoadMeshFile(cfg.Input, cfg.ReverseDXF)
	if err != nil {
		return err
	}
	if cfg.Scale != 1 {
		soup = soup.Scaled(cfg.Scale)
	}
	log.Printf("Loaded %s: %d polygons, %d vertices", cfg.Input, len(soup.Polygons), soup.Arena.Len())

	opts := bspmesh.BuildOptions{
		Parallel:      cfg.Parallel,
		ParallelDepth: cfg.ParallelDepth,
	}
	if verbose {
		opts.Logger = log.Default()
	}
	tree, err := bspmesh.BuildTree(soup, opts)
	if err != nil {
		return fmt.Errorf("build %s: %w", cfg.Input, err)
	}
	if cfg.DumpTree {
		if err := tree.Dump(os.Stdout); err != nil {
			return err
		}
	}

	tris := tree.Flatten()
	if err := bspmesh.SaveSTLFile(cfg.Output, tris, cfg.ASCII, cfg.SolidName); err != nil {
		return err
	}
	stats := tree.Stats()
	log.Printf("Wrote %s: %d triangles from %d leaves (%d polygons split)", cfg.Output, len(tris), stats.Leaves, tree.Splits)

	if cfg.Preview != "" {
		popts := bspmesh.DefaultPreviewOptions()
		popts.Size = cfg.PreviewSize
		popts.Supersample = cfg.Supersample
		popts.ColorLeaves = true
		if err := bspmesh.SavePreview(cfg.Preview, bspmesh.RenderPreview(tris, popts)); err != nil {
			return err
		}
		log.Printf("Wrote preview %s", cfg.Preview)
	}

	log.Printf("Done in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
