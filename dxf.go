package bspmesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

func LoadDXFFile(fileName string, reverse bool) (*Soup, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open DXF file %s: %w", fileName, err)
	}
	defer file.Close()

	soup, err := ReadDXF(file, reverse)
	if err != nil {
		return nil, fmt.Errorf("error parsing DXF file %s: %w", fileName, err)
	}
	return soup, nil
}

// ReadDXF reads the 3DFACE entities of an ASCII DXF stream. A face whose
// fourth corner repeats the third is a triangle. DXF has no texture
// coordinates, so every uv is zero. reverse flips the winding of every face.
func ReadDXF(reader io.Reader, reverse bool) (*Soup, error) {
	soup := NewSoup()
	scanner := bufio.NewScanner(reader)

	var corners [4]mgl64.Vec3
	inFace := false
	finishFace := func() error {
		points := corners[:]
		if corners[3] == corners[2] {
			points = corners[:3]
		}
		points = slices.Clone(points)
		if reverse {
			slices.Reverse(points)
		}
		vertices := make([]Vertex, len(points))
		for i, p := range points {
			vertices[i] = Vertex{Position: p}
		}
		return soup.AddPolygon(vertices, NewellNormal(points))
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return nil, fmt.Errorf("line %d: could not parse group code '%s': %w", lineNo, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return nil, fmt.Errorf("line %d: unexpected end of file after group code %d", lineNo, code)
		}
		lineNo++
		value := strings.TrimSpace(scanner.Text())

		switch {
		case code == 0:
			if inFace {
				if err := finishFace(); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
			inFace = value == "3DFACE"
			corners = [4]mgl64.Vec3{}
		case inFace && code >= 10 && code <= 33 && code%10 <= 3:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: could not parse float value '%s': %w", lineNo, value, err)
			}
			// 1x, 2x and 3x are the x, y and z of corner x
			corners[code%10][code/10-1] = f
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if inFace {
		if err := finishFace(); err != nil {
			return nil, err
		}
	}
	return soup, nil
}
