package bspmesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnsupportedFace is returned for OBJ faces without texture coordinates.
var ErrUnsupportedFace = errors.New("bspmesh: unsupported face encoding")

func LoadOBJFile(fileName string) (*Soup, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open OBJ file %s: %w", fileName, err)
	}
	defer file.Close()

	soup, err := ReadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing OBJ file %s: %w", fileName, err)
	}
	return soup, nil
}

// ReadOBJ reads the polygons of a Wavefront OBJ stream. Every face corner
// must reference a texture coordinate (v/vt or v/vt/vn). A face's normal is
// the average of its corner normals, or is computed from its positions when
// the file has none. A face wound against its normals is reversed. Records
// other than v, vt, vn and f are ignored.
func ReadOBJ(reader io.Reader) (*Soup, error) {
	soup := NewSoup()
	var positions []mgl64.Vec3
	var uvs []mgl64.Vec2
	var normals []mgl64.Vec3

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, mgl64.Vec3{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			uvs = append(uvs, mgl64.Vec2{p[0], p[1]})
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, mgl64.Vec3{p[0], p[1], p[2]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, ErrTooFewVertices)
			}
			vertices := make([]Vertex, 0, len(fields)-1)
			points := make([]mgl64.Vec3, 0, len(fields)-1)
			var normalSum mgl64.Vec3
			for _, corner := range fields[1:] {
				vi, ti, ni, err := parseCorner(corner, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: face corner %q: %w", lineNo, corner, err)
				}
				vertices = append(vertices, Vertex{Position: positions[vi], UV: uvs[ti]})
				points = append(points, positions[vi])
				if ni >= 0 {
					normalSum = normalSum.Add(normals[ni])
				}
			}
			wound := NewellNormal(points)
			normal := normalize(normalSum)
			if normal == (mgl64.Vec3{}) {
				normal = wound
			} else if normal.Dot(wound) < 0 {
				// mirrored export: wind the face to agree with its normals
				slices.Reverse(vertices)
			}
			if err := soup.AddPolygon(vertices, normal); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from OBJ source: %w", err)
	}
	return soup, nil
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("want %d values, got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", fields[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// parseCorner splits a v/vt[/vn] face corner into zero-based indices. ni is
// -1 when the corner has no normal.
func parseCorner(corner string, nv, nt, nn int) (vi, ti, ni int, err error) {
	parts := strings.Split(corner, "/")
	if len(parts) < 2 || parts[1] == "" {
		return 0, 0, 0, ErrUnsupportedFace
	}
	if vi, err = resolveIndex(parts[0], nv); err != nil {
		return 0, 0, 0, err
	}
	if ti, err = resolveIndex(parts[1], nt); err != nil {
		return 0, 0, 0, err
	}
	ni = -1
	if len(parts) > 2 && parts[2] != "" {
		if ni, err = resolveIndex(parts[2], nn); err != nil {
			return 0, 0, 0, err
		}
	}
	return vi, ti, ni, nil
}

// resolveIndex turns a one-based or negative (relative) OBJ index into a
// zero-based one.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("could not parse index '%s': %w", s, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += n
	default:
		return 0, ErrIndexOutOfRange
	}
	if i < 0 || i >= n {
		return 0, ErrIndexOutOfRange
	}
	return i, nil
}

// LoadMeshFile reads an OBJ or DXF file, chosen by extension. reverse only
// applies to DXF input.
func LoadMeshFile(fileName string, reverse bool) (*Soup, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".obj":
		return LoadOBJFile(fileName)
	case ".dxf":
		return LoadDXFFile(fileName, reverse)
	}
	return nil, fmt.Errorf("unknown mesh format for %s", fileName)
}
