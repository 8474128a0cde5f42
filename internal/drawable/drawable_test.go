package drawable

import (
	"errors"
	"testing"

	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

type nopAsset struct{}

func (nopAsset) Release() {}

type stubLoader struct{}

func (stubLoader) Load(string) (scene.Asset, error) { return nopAsset{}, nil }

// flakyScene fails every model load once budget is exhausted
type flakyScene struct {
	*scene.Graph
	budget int
}

func (f *flakyScene) LoadModel(path string) (*scene.Node, error) {
	if f.budget == 0 {
		return nil, errors.New("out of models")
	}
	f.budget--
	return f.Graph.LoadModel(path)
}

func newGraph() *scene.Graph {
	return scene.New(stubLoader{}, nil)
}

func positions(nodes []*scene.Node) []geometry.Vector3 {
	var out []geometry.Vector3
	for _, n := range nodes {
		out = append(out, n.Pos)
	}
	return out
}

func TestPointCloudScenario(t *testing.T) {
	g := newGraph()
	pc, err := NewPointCloud(g, mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1}))
	require.NoError(t, err)

	assert.Equal(t, 2, pc.Len())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}}, positions(pc.Nodes()))

	require.NoError(t, pc.Redraw(mat.NewDense(1, 3, []float64{2, 2, 2})))
	assert.Equal(t, 1, pc.Len())
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, []geometry.Vector3{{X: 2, Y: 2, Z: 2}}, positions(pc.Nodes()))
	assert.True(t, mat.Equal(mat.NewDense(1, 3, []float64{2, 2, 2}), pc.Pos()))
}

func TestPointCloudRedrawNeverAccumulates(t *testing.T) {
	g := newGraph()
	pc, err := NewPointCloud(g, nil, WithSource(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, DefaultSampleCount, pc.Len())

	for _, n := range []int{5, 40, 1, 17} {
		x := mat.NewDense(n, 3, nil)
		require.NoError(t, pc.Redraw(x))
		assert.Equal(t, n, pc.Len())
		assert.Equal(t, n, g.Len())
		for _, node := range pc.Nodes() {
			assert.True(t, node.Attached())
		}
	}
}

func TestPointCloudStyle(t *testing.T) {
	g := newGraph()
	c := scene.RGBA(1, 0, 0, 1)
	pc, err := NewPointCloud(g, mat.NewDense(1, 3, nil), WithColor(c), WithScale(0.2))
	require.NoError(t, err)

	n := pc.Nodes()[0]
	assert.Equal(t, c, n.Color)
	assert.Equal(t, 0.2, n.Scale)
	assert.Equal(t, scene.SpherePath, n.Path)
}

func TestPointCloudSampling(t *testing.T) {
	g := newGraph()
	pc, err := NewPointCloud(g, nil, WithSampling(7, []float64{5, 5, 5}, nil), WithSource(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, 7, pc.Len())

	_, err = NewPointCloud(g, nil, WithSampling(0, nil, nil))
	assert.Error(t, err)
}

func TestPointCloudRejectsBadShape(t *testing.T) {
	g := newGraph()
	pc, err := NewPointCloud(g, mat.NewDense(2, 3, nil))
	require.NoError(t, err)

	err = pc.Redraw(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrShape)
	assert.Equal(t, 2, pc.Len(), "bad input must not touch the drawn cloud")

	assert.ErrorIs(t, pc.Redraw(nil), ErrEmpty)
}

func TestPointCloudPartialFailureReleasesEverything(t *testing.T) {
	fs := &flakyScene{Graph: newGraph(), budget: 3}
	pc, err := NewPointCloud(fs, mat.NewDense(2, 3, nil))
	require.NoError(t, err)

	err = pc.Redraw(mat.NewDense(4, 3, nil))
	assert.Error(t, err)
	assert.Equal(t, 0, pc.Len())
	assert.Equal(t, 0, fs.Len())
	assert.Nil(t, pc.Pos())
}

func TestPointRedrawAndDelete(t *testing.T) {
	g := newGraph()
	p, err := NewPoint(g, geometry.NewVector3(1, 2, 3))
	require.NoError(t, err)
	require.Len(t, p.Nodes(), 1)

	require.NoError(t, p.Redraw(geometry.NewVector3(4, 5, 6)))
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, geometry.NewVector3(4, 5, 6), p.Nodes()[0].Pos)
	assert.Equal(t, geometry.NewVector3(4, 5, 6), p.Pos())

	p.Delete()
	p.Delete()
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, p.Nodes())
	assert.Equal(t, geometry.Vector3{}, p.Pos())
	assert.Zero(t, p.Gram())
	_, err = p.LeftMultiply(mat.NewDense(1, 3, []float64{1, 1, 1}))
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = p.RightMultiply(mat.NewDense(3, 1, []float64{1, 1, 1}))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPointLoadFailure(t *testing.T) {
	fs := &flakyScene{Graph: newGraph(), budget: 1}
	p, err := NewPoint(fs, geometry.NewVector3(0, 0, 1))
	require.NoError(t, err)

	assert.Error(t, p.Redraw(geometry.NewVector3(1, 1, 1)))
	assert.Empty(t, p.Nodes())
	assert.Equal(t, 0, fs.Len())
	assert.Equal(t, geometry.Vector3{}, p.Pos(), "a failed redraw keeps no coordinate")

	_, err = NewPoint(fs, geometry.Vector3{})
	assert.Error(t, err)
}

func TestVectorRedrawKeepsStyle(t *testing.T) {
	g := newGraph()
	c := scene.RGBA(1, 0, 1, 1)
	v := NewVector(g, geometry.NewVector3(1, 0, 0), WithColor(c), WithThickness(5), WithStart(geometry.NewVector3(0, 0, 1)))

	v.Redraw(geometry.NewVector3(0, 3, 0))
	require.Len(t, v.Nodes(), 1)
	assert.Equal(t, 1, g.Len())

	seg := v.Nodes()[0].Segments[0]
	assert.Equal(t, geometry.NewVector3(0, 0, 1), seg.From)
	assert.Equal(t, geometry.NewVector3(0, 3, 0), seg.To)
	assert.Equal(t, c, seg.Color)
	assert.Equal(t, 5.0, seg.Thickness)

	v.RedrawFrom(geometry.NewVector3(1, 1, 1), geometry.NewVector3(2, 2, 2))
	assert.Equal(t, geometry.NewVector3(1, 1, 1), v.Start())
	assert.Equal(t, geometry.NewVector3(2, 2, 2), v.Pos())
	assert.Equal(t, 1, g.Len())

	v.Delete()
	v.Delete()
	assert.Equal(t, 0, g.Len())
}

func TestMultiply(t *testing.T) {
	g := newGraph()
	v := NewVector(g, geometry.NewVector3(1, 2, 3))

	rot := mat.NewDense(3, 3, []float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	})
	left, err := v.LeftMultiply(rot)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(3, 1, []float64{-2, 1, 3}), left))

	right, err := v.RightMultiply(mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1}))
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(1, 2, []float64{4, 5}), right))

	assert.Equal(t, 14.0, v.Gram())

	_, err = v.LeftMultiply(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, ErrShape)
	_, err = v.RightMultiply(mat.NewDense(2, 3, nil))
	assert.ErrorIs(t, err, ErrShape)
	_, err = v.RightMultiply(nil)
	assert.ErrorIs(t, err, ErrShape)

	p, err := NewPoint(g, geometry.NewVector3(1, 0, 2))
	require.NoError(t, err)
	out, err := p.LeftMultiply(mat.NewDense(1, 3, []float64{1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.At(0, 0))
	out, err = p.RightMultiply(mat.NewDense(3, 1, []float64{2, 2, 2}))
	require.NoError(t, err)
	assert.Equal(t, 6.0, out.At(0, 0))
	assert.Equal(t, 5.0, p.Gram())
}

func TestPointModelOption(t *testing.T) {
	g := newGraph()
	p, err := NewPoint(g, geometry.NewVector3(1, 1, 1), WithModel("marker.stl"))
	require.NoError(t, err)
	assert.Equal(t, "marker.stl", p.Nodes()[0].Path)

	pc, err := NewPointCloud(g, mat.NewDense(2, 3, nil))
	require.NoError(t, err)
	for _, n := range pc.Nodes() {
		assert.Equal(t, DefaultPointModel, n.Path)
	}
}
