package space

import (
	"errors"
	"testing"

	"github.com/philipparndt/space3d/internal/drawable"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type nopAsset struct{}

func (nopAsset) Release() {}

type loader map[string]bool

func (l loader) Load(path string) (scene.Asset, error) {
	if !l[path] {
		return nil, errors.New("not found")
	}
	return nopAsset{}, nil
}

func newSpace() *Space {
	return New(scene.New(loader{scene.SpherePath: true, "part.stl": true}, nil), nil)
}

func texts(g *scene.Graph) map[string]*scene.Node {
	out := make(map[string]*scene.Node)
	for _, n := range g.Nodes() {
		if n.Kind == scene.KindText {
			out[n.Text] = n
		}
	}
	return out
}

func TestCreateAxes(t *testing.T) {
	s := newSpace()
	axes := s.CreateAxes(5)

	require.Len(t, axes.Segments, 3)
	assert.Equal(t, geometry.NewVector3(0, 5, 0), axes.Segments[1].To)
	assert.Equal(t, 4.0, axes.Segments[2].Thickness)

	labels := texts(s.Graph())
	require.Len(t, labels, 3)
	assert.Equal(t, geometry.NewVector3(0, 0, 5.3), labels["Z"].Pos)
	assert.Equal(t, 0.5, labels["X"].Scale)
	assert.True(t, labels["Y"].Billboard)
	assert.Equal(t, scene.AlignCenter, labels["Y"].Align)
}

func TestCreateGrid(t *testing.T) {
	s := newSpace()
	grid := s.CreateGrid(10, 1)

	assert.Len(t, grid.Segments, 42)
	for _, seg := range grid.Segments {
		assert.Zero(t, seg.From.Z)
		assert.Zero(t, seg.To.Z)
		assert.Equal(t, 20.0, seg.From.Distance(seg.To))
	}
	assert.Equal(t, geometry.NewVector3(-10, -10, 0), grid.Segments[0].From)

	small := s.CreateGrid(2, 0.5)
	assert.Len(t, small.Segments, 10)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), small.Segments[len(small.Segments)-1].To)
}

func TestDrawNewBasis(t *testing.T) {
	s := newSpace()
	v := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 2, 0,
		1, 1, 1,
	})
	b, err := s.DrawNewBasis(v)
	require.NoError(t, err)

	assert.Equal(t, geometry.NewVector3(0, 2, 0), b.Vectors[1].Pos())
	seg := b.Vectors[2].Nodes()[0].Segments[0]
	assert.Equal(t, BasisColors[2], seg.Color)
	assert.Equal(t, 5.0, seg.Thickness)

	labels := texts(s.Graph())
	assert.InDelta(t, 2.2, labels["y"].Pos.Y, 1e-12)
	assert.Equal(t, BasisColors[0], labels["x"].Color)

	_, err = s.DrawNewBasis(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, drawable.ErrShape)
}

func TestBasisRedrawAndDelete(t *testing.T) {
	s := newSpace()
	b, err := s.DrawNewBasis(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, 6, s.Graph().Len())

	require.NoError(t, b.Redraw(mat.NewDense(3, 3, []float64{2, 0, 0, 0, 2, 0, 0, 0, 2})))
	assert.Equal(t, 6, s.Graph().Len())
	assert.Equal(t, geometry.NewVector3(0, 0, 2), b.Vectors[2].Pos())
	assert.InDelta(t, 2.2, texts(s.Graph())["x"].Pos.X, 1e-12)
	assert.Equal(t, BasisColors[1], b.Vectors[1].Nodes()[0].Segments[0].Color)

	assert.ErrorIs(t, b.Redraw(mat.NewDense(3, 2, nil)), drawable.ErrShape)

	b.Delete()
	assert.Equal(t, 0, s.Graph().Len())

	assert.ErrorIs(t, b.Redraw(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})), ErrDeleted)
	assert.Equal(t, 0, s.Graph().Len(), "a deleted basis draws nothing")
	b.Delete()
}

func TestFactories(t *testing.T) {
	s := newSpace()

	pc, err := s.CreatePointCloud(mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, pc.Len())

	p, err := s.CreatePoint(geometry.NewVector3(3, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(3, 3, 3), p.Pos())

	s.CreateVector(geometry.NewVector3(1, 0, 0))
	assert.Equal(t, 4, s.Graph().Len())
}

func TestLoadMesh(t *testing.T) {
	s := newSpace()
	assert.NotNil(t, s.LoadMesh("part.stl"))
	assert.Nil(t, s.LoadMesh("missing.stl"))
	assert.Equal(t, 1, s.Graph().Len())
}
