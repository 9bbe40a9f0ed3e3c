package bspmesh

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// short name, for convenience
var le = binary.LittleEndian

// stlRecord is the 50 byte binary STL triangle record.
type stlRecord struct {
	Normal [3]float32
	Vertex [3][3]float32
	Attr   uint16
}

func toFloat32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// WriteSTL writes tris as binary STL. header is truncated or space padded to
// 80 bytes.
func WriteSTL(w io.Writer, header string, tris []Triangle) error {
	bw := bufio.NewWriter(w)

	var h [80]byte
	for i := range h {
		h[i] = ' '
	}
	copy(h[:], header)
	if _, err := bw.Write(h[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, le, uint32(len(tris))); err != nil {
		return err
	}

	for _, t := range tris {
		rec := stlRecord{Normal: toFloat32(t.Normal)}
		for i, v := range t.Vertices {
			rec.Vertex[i] = toFloat32(v)
		}
		if err := binary.Write(bw, le, &rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteASCIISTL writes tris as an ASCII STL solid called name.
func WriteASCIISTL(w io.Writer, name string, tris []Triangle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range tris {
		n := toFloat32(t.Normal)
		fmt.Fprintf(bw, "  facet normal %e %e %e\n", n[0], n[1], n[2])
		fmt.Fprintf(bw, "    outer loop\n")
		for _, v := range t.Vertices {
			p := toFloat32(v)
			fmt.Fprintf(bw, "      vertex %e %e %e\n", p[0], p[1], p[2])
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)
	return bw.Flush()
}

// SaveSTLFile writes tris to a new file. An existing file is never
// overwritten.
func SaveSTLFile(fileName string, tris []Triangle, ascii bool, name string) error {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("could not create STL file %s: %w", fileName, err)
	}

	if ascii {
		err = WriteASCIISTL(file, name, tris)
	} else {
		err = WriteSTL(file, name, tris)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("error writing STL file %s: %w", fileName, err)
	}
	return nil
}
