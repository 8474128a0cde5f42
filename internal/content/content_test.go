package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/space3d/internal/config"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/internal/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAsset struct{}

func (nopAsset) Release() {}

type loader struct{}

func (loader) Load(path string) (scene.Asset, error) {
	if path == scene.SpherePath || path == "part.stl" {
		return nopAsset{}, nil
	}
	return nil, errors.New("not found")
}

func newSpace() (*space.Space, *scene.Graph) {
	g := scene.New(loader{}, nil)
	return space.New(g, nil), g
}

func writePoints(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildDefaultScene(t *testing.T) {
	s, g := newSpace()
	c, err := Build(s, config.Default(), Options{}, nil)
	require.NoError(t, err)

	require.NotNil(t, c.Cloud())
	assert.Equal(t, 20, c.Cloud().Len())
	require.NotNil(t, c.Basis())

	// axes, grid, basis vectors
	assert.Equal(t, 5, g.Count(scene.KindLines))
	// X, Y, Z and x, y, z
	assert.Equal(t, 6, g.Count(scene.KindText))
	assert.Equal(t, 20, g.Count(scene.KindModel))
}

func TestBuildIsDeterministic(t *testing.T) {
	s1, _ := newSpace()
	a, err := Build(s1, config.Default(), Options{}, nil)
	require.NoError(t, err)
	s2, _ := newSpace()
	b, err := Build(s2, config.Default(), Options{}, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Cloud().Pos().RawMatrix().Data, b.Cloud().Pos().RawMatrix().Data)
}

func TestBuildWithoutCloud(t *testing.T) {
	cfg := config.Default()
	cfg.Cloud.Enabled = false
	s, g := newSpace()
	c, err := Build(s, cfg, Options{}, nil)
	require.NoError(t, err)

	assert.Nil(t, c.Cloud())
	assert.Nil(t, c.Basis())
	assert.Equal(t, 2, g.Count(scene.KindLines))
	assert.Equal(t, 0, g.Count(scene.KindModel))
}

func TestBuildFromPointsFile(t *testing.T) {
	path := writePoints(t, "x,y,z\n0,0,0\n1,0,0\n0,2,0\n")
	s, _ := newSpace()
	c, err := Build(s, config.Default(), Options{PointsFile: path, MeshFile: "part.stl"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Cloud().Len())
	assert.Equal(t, 2.0, c.Cloud().Pos().At(2, 1))
}

func TestBuildMissingMeshIsNotFatal(t *testing.T) {
	s, g := newSpace()
	_, err := Build(s, config.Default(), Options{MeshFile: "missing.stl"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 20, g.Count(scene.KindModel))
}

func TestBuildMissingPointsFile(t *testing.T) {
	s, _ := newSpace()
	_, err := Build(s, config.Default(), Options{PointsFile: filepath.Join(t.TempDir(), "none.csv")}, nil)
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	path := writePoints(t, "0,0,0\n1,1,1\n2,0,1\n")
	s, g := newSpace()
	c, err := Build(s, config.Default(), Options{PointsFile: path}, nil)
	require.NoError(t, err)
	lines := g.Count(scene.KindLines)

	require.NoError(t, os.WriteFile(path, []byte("0,0,0\n4,0,0\n0,1,0\n0,0,1\n"), 0o644))
	c.Reload(path)
	assert.Equal(t, 4, c.Cloud().Len())
	assert.Equal(t, 4, g.Count(scene.KindModel))
	assert.Equal(t, lines, g.Count(scene.KindLines))
	assert.Equal(t, 6, g.Count(scene.KindText))

	// a broken file keeps the last cloud
	require.NoError(t, os.WriteFile(path, []byte("not,a,number\n1,2\n"), 0o644))
	c.Reload(path)
	assert.Equal(t, 4, c.Cloud().Len())
}

func TestBuildUsesConfiguredPointModel(t *testing.T) {
	s, g := newSpace()
	cfg := config.Default()
	cfg.Cloud.PointModel = "part.stl"

	c, err := Build(s, cfg, Options{}, nil)
	require.NoError(t, err)
	require.Equal(t, 20, c.Cloud().Len())
	for _, n := range c.Cloud().Nodes() {
		assert.Equal(t, "part.stl", n.Path)
	}
	assert.Equal(t, 20, g.Count(scene.KindModel))

	cfg.Cloud.PointModel = "missing.stl"
	s, _ = newSpace()
	_, err = Build(s, cfg, Options{}, nil)
	assert.Error(t, err)
}
