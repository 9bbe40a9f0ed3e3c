package bspmesh

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var stlTris = []Triangle{
	{
		Vertices: [3]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normal:   mgl64.Vec3{0, 0, 1},
	},
	{
		Vertices: [3]mgl64.Vec3{{0, 0, 0}, {0, 0, 2}, {0, 3, 0}},
		Normal:   mgl64.Vec3{-1, 0, 0},
	},
}

func TestWriteSTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, "test mesh", stlTris); err != nil {
		t.Fatalf("WriteSTL() error = %v", err)
	}
	data := buf.Bytes()
	if len(data) != 84+50*len(stlTris) {
		t.Fatalf("wrote %d bytes, want %d", len(data), 84+50*len(stlTris))
	}

	header := string(data[:80])
	if !strings.HasPrefix(header, "test mesh") || strings.TrimRight(header, " ") != "test mesh" {
		t.Errorf("header = %q, want space padded name", header)
	}
	if n := le.Uint32(data[80:84]); n != uint32(len(stlTris)) {
		t.Errorf("triangle count = %d, want %d", n, len(stlTris))
	}

	r := bytes.NewReader(data[84:])
	for i, want := range stlTris {
		var rec stlRecord
		if err := binary.Read(r, le, &rec); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if rec.Normal != toFloat32(want.Normal) {
			t.Errorf("record %d normal = %v, want %v", i, rec.Normal, want.Normal)
		}
		for j, v := range want.Vertices {
			if rec.Vertex[j] != toFloat32(v) {
				t.Errorf("record %d vertex %d = %v, want %v", i, j, rec.Vertex[j], v)
			}
		}
		if rec.Attr != 0 {
			t.Errorf("record %d attribute = %d, want 0", i, rec.Attr)
		}
	}
}

func TestWriteSTLLongHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, strings.Repeat("x", 100), nil); err != nil {
		t.Fatalf("WriteSTL() error = %v", err)
	}
	if buf.Len() != 84 {
		t.Errorf("wrote %d bytes, want 84", buf.Len())
	}
}

func TestWriteASCIISTL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteASCIISTL(&buf, "cube", stlTris); err != nil {
		t.Fatalf("WriteASCIISTL() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "solid cube\n") || !strings.HasSuffix(out, "endsolid cube\n") {
		t.Errorf("output is not wrapped in solid/endsolid:\n%s", out)
	}
	if n := strings.Count(out, "endfacet"); n != len(stlTris) {
		t.Errorf("%d facets, want %d", n, len(stlTris))
	}
	if n := strings.Count(out, "vertex "); n != 3*len(stlTris) {
		t.Errorf("%d vertices, want %d", n, 3*len(stlTris))
	}
	if !strings.Contains(out, "facet normal -1.000000e+00 0.000000e+00 0.000000e+00") {
		t.Errorf("missing second facet normal:\n%s", out)
	}
}

func TestSaveSTLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.stl")

	if err := SaveSTLFile(path, stlTris, false, "mesh"); err != nil {
		t.Fatalf("SaveSTLFile() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(84+50*len(stlTris)) {
		t.Errorf("file is %d bytes, want %d", info.Size(), 84+50*len(stlTris))
	}

	err = SaveSTLFile(path, nil, true, "mesh")
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("SaveSTLFile() over an existing file error = %v, want %v", err, fs.ErrExist)
	}
	if info2, _ := os.Stat(path); info2.Size() != info.Size() {
		t.Errorf("existing file was modified")
	}

	asciiPath := filepath.Join(dir, "mesh_ascii.stl")
	if err := SaveSTLFile(asciiPath, stlTris, true, "mesh"); err != nil {
		t.Fatalf("SaveSTLFile(ascii) error = %v", err)
	}
	data, err := os.ReadFile(asciiPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("solid mesh")) {
		t.Errorf("ascii file starts with %q", data[:10])
	}
}
