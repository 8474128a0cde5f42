package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/space3d/pkg/geometry"
)

// ErrEmpty is returned for files without facets
var ErrEmpty = errors.New("stl has no triangles")

// Parse reads an ASCII or binary STL file
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return ParseReader(file)
}

// ParseReader detects the format from the first bytes of r. Binary
// files whose header happens to start with "solid" are recognized by
// the absence of any facet keyword.
func ParseReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stl: %w", err)
	}

	var model *Model
	if bytes.HasPrefix(data, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		model, err = parseASCII(bytes.NewReader(data))
	} else {
		model, err = parseBinary(data)
	}
	if err != nil {
		return nil, err
	}
	if len(model.Triangles) == 0 {
		return nil, ErrEmpty
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		xyz[i] = v
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

func parseASCII(r io.Reader) (*Model, error) {
	model := &Model{}
	scanner := bufio.NewScanner(r)

	var normal geometry.Vector3
	var vertices []geometry.Vector3
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			model.Name = strings.Join(fields[1:], " ")
		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			n, err := parseVector(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normal = n
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			vertices = append(vertices, v)
		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(vertices))
			}
			model.Triangles = append(model.Triangles, geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

// binaryFacet mirrors the 50 byte record of a binary STL
type binaryFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

func parseBinary(data []byte) (*Model, error) {
	const headerSize, facetSize = 80, 50
	if len(data) < headerSize+4 {
		return nil, fmt.Errorf("binary stl too short: %d bytes", len(data))
	}
	count := binary.LittleEndian.Uint32(data[headerSize:])
	body := data[headerSize+4:]
	if uint64(len(body)) < uint64(count)*facetSize {
		return nil, fmt.Errorf("binary stl declares %d triangles but holds %d bytes", count, len(body))
	}

	model := &Model{
		Name:      strings.TrimSpace(string(bytes.TrimRight(data[:headerSize], "\x00"))),
		Triangles: make([]geometry.Triangle, 0, count),
	}
	r := bytes.NewReader(body)
	for i := uint32(0); i < count; i++ {
		var f binaryFacet
		if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		model.Triangles = append(model.Triangles, geometry.NewTriangle(vec(f.Normal), vec(f.V1), vec(f.V2), vec(f.V3)))
	}
	return model, nil
}
