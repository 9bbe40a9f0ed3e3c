package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/smasonuk/bspmesh/internal/config"
)

// two crossing quads; the second is cut by the plane of the first
const crossOBJ = `v 0 -2 -1
v 0 2 -1
v 0 2 1
v 0 -2 1
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
f 5/1 6/2 7/3 8/4
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cross.obj")
	if err := os.WriteFile(in, []byte(crossOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{Preview: filepath.Join(dir, "cross.png")}
	cfg.Resolve(config.Flags{Input: in, PreviewSize: 32, Parallel: true})
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := run(cfg, false); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cross.stl"))
	if err != nil {
		t.Fatalf("STL not written: %v", err)
	}
	if len(data) < 84 {
		t.Fatalf("STL is %d bytes", len(data))
	}
	// the divider gives 2 triangles and each half of the cut quad 2 more
	if n := binary.LittleEndian.Uint32(data[80:84]); n != 6 {
		t.Errorf("STL holds %d triangles, want 6", n)
	}
	if _, err := os.Stat(cfg.Preview); err != nil {
		t.Errorf("preview not written: %v", err)
	}

	// a second run must not overwrite the first output
	if err := run(cfg, false); err == nil {
		t.Errorf("second run() overwrote %s", cfg.Output)
	}
}
