// Package content draws what the viewer shows: the static scenery and a
// point cloud with its principal axes.
package content

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/space3d/internal/config"
	"github.com/philipparndt/space3d/internal/drawable"
	"github.com/philipparndt/space3d/internal/space"
	"github.com/philipparndt/space3d/pkg/points"
	"github.com/philipparndt/space3d/pkg/stats"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Options are the inputs given on the command line
type Options struct {
	PointsFile string
	MeshFile   string
}

// Content is the dynamic part of the scene
type Content struct {
	cloud *drawable.PointCloud
	basis *space.Basis
	log   *slog.Logger
}

// Build draws the static scenery and the initial content. The cloud is
// read from opts.PointsFile, or sampled when none is given and the
// cloud is enabled.
func Build(s *space.Space, cfg config.Config, opts Options, log *slog.Logger) (*Content, error) {
	if log == nil {
		log = slog.Default()
	}
	s.CreateAxes(cfg.Scene.AxesLength)
	s.CreateGrid(cfg.Scene.GridSize, cfg.Scene.GridSpacing)

	if opts.MeshFile != "" {
		s.LoadMesh(opts.MeshFile)
	}

	c := &Content{log: log}

	var x mat.Matrix
	switch {
	case opts.PointsFile != "":
		loaded, err := points.ReadFile(opts.PointsFile)
		if err != nil {
			return nil, err
		}
		log.Info("Loaded points", "path", opts.PointsFile, "count", loaded.RawMatrix().Rows)
		x = loaded
	case !cfg.Cloud.Enabled:
		return c, nil
	}

	cloudOpts := []drawable.Option{
		drawable.WithScale(cfg.Cloud.PointScale),
		drawable.WithSampling(cfg.Cloud.Samples, cfg.Cloud.Mean, cfg.Cloud.Covariance),
		drawable.WithSource(rand.NewSource(cfg.Cloud.Seed)),
	}
	if cfg.Cloud.PointModel != "" {
		cloudOpts = append(cloudOpts, drawable.WithModel(cfg.Cloud.PointModel))
	}
	cloud, err := s.CreatePointCloud(x, cloudOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to draw point cloud: %w", err)
	}
	c.cloud = cloud

	if cfg.Scene.ShowBasis {
		if axes, err := stats.PrincipalAxes(cloud.Pos()); err != nil {
			log.Warn("No principal axes for point cloud", "err", err)
		} else if c.basis, err = s.DrawNewBasis(axes); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Cloud returns the drawn point cloud or nil
func (c *Content) Cloud() *drawable.PointCloud {
	return c.cloud
}

// Basis returns the drawn principal axes or nil
func (c *Content) Basis() *space.Basis {
	return c.basis
}

// Reload redraws the cloud from path. A broken file keeps the last
// drawn cloud.
func (c *Content) Reload(path string) {
	x, err := points.ReadFile(path)
	if err != nil {
		c.log.Error("Error reloading points", "path", path, "err", err)
		return
	}
	if c.cloud == nil {
		return
	}
	if err := c.cloud.Redraw(x); err != nil {
		c.log.Error("Error redrawing points", "path", path, "err", err)
		return
	}
	c.log.Info("Points reloaded", "path", path, "count", c.cloud.Len())

	if c.basis == nil {
		return
	}
	axes, err := stats.PrincipalAxes(x)
	if err != nil {
		c.log.Warn("No principal axes for point cloud", "err", err)
		return
	}
	if err := c.basis.Redraw(axes); err != nil {
		c.log.Error("Error redrawing basis", "err", err)
	}
}
