package stl

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiTriangle = `solid demo part
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid demo part
`

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiTriangle))
	require.NoError(t, err)

	assert.Equal(t, "demo part", model.Name)
	require.Len(t, model.Triangles, 1)
	tri := model.Triangles[0]
	assert.Equal(t, geometry.NewVector3(0, 0, 1), tri.Normal)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), tri.V2)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(1, 1, 0), bbox.Max)
}

func binarySTL(header string, facets ...binaryFacet) []byte {
	var buf bytes.Buffer
	h := make([]byte, 80)
	copy(h, header)
	buf.Write(h)
	binary.Write(&buf, binary.LittleEndian, uint32(len(facets)))
	for _, f := range facets {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	data := binarySTL("solid but binary", binaryFacet{
		Normal: [3]float32{0, 0, 1},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{2, 0, 0},
		V3:     [3]float32{0, 2, 0},
	})
	model, err := ParseReader(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "solid but binary", model.Name)
	require.Len(t, model.Triangles, 1)
	assert.InDelta(t, 2.0, model.Triangles[0].Area(), 1e-9)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseReader(bytes.NewReader(binarySTL("empty")))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ParseReader(bytes.NewReader([]byte("short")))
	assert.Error(t, err)

	truncated := binarySTL("x", binaryFacet{})
	_, err = ParseReader(bytes.NewReader(truncated[:len(truncated)-10]))
	assert.Error(t, err)

	_, err = ParseReader(strings.NewReader(strings.Replace(asciiTriangle, "vertex 1 0 0", "vertex 1 zero 0", 1)))
	assert.Error(t, err)

	_, err = Parse("does-not-exist.stl")
	assert.Error(t, err)
}
