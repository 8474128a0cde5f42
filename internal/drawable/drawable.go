// Package drawable holds the simple shapes of a space: points, point
// clouds and vectors. Each shape owns the scene nodes it created last
// and replaces all of them on redraw.
package drawable

import (
	"errors"
	"image/color"

	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"golang.org/x/exp/rand"
)

var (
	// ErrShape reports a coordinate table or matrix with the wrong dimensions
	ErrShape = errors.New("dimension mismatch")
	// ErrEmpty reports missing coordinates, either in the input or because
	// nothing is drawn
	ErrEmpty = errors.New("no coordinates")
)

// Scene is the part of the render graph a drawable needs
type Scene interface {
	LoadModel(path string) (*scene.Node, error)
	AttachLines(ls *scene.LineSegs) *scene.Node
}

var (
	DefaultPointColor  = scene.RGBA(0.6, 0.6, 1, 0.3)
	DefaultVectorColor = scene.RGBA(0.7, 0.7, 0, 1)
	DefaultPointScale  = 0.07
	DefaultThickness   = 3.0
	DefaultSampleCount = 20
	DefaultPointModel  = scene.SpherePath
)

type options struct {
	color     color.RGBA
	colorSet  bool
	scale     float64
	thickness float64
	start     geometry.Vector3
	model     string
	samples   int
	mean      []float64
	cov       [][]float64
	src       rand.Source
}

// Option customizes a drawable at construction
type Option func(*options)

// WithColor overrides the default color
func WithColor(c color.RGBA) Option {
	return func(o *options) { o.color, o.colorSet = c, true }
}

// WithScale sets the sphere scale of points
func WithScale(s float64) Option {
	return func(o *options) { o.scale = s }
}

// WithThickness sets the line thickness of vectors
func WithThickness(t float64) Option {
	return func(o *options) { o.thickness = t }
}

// WithStart sets the tail of a vector
func WithStart(p geometry.Vector3) Option {
	return func(o *options) { o.start = p }
}

// WithModel draws points with the model at path instead of the sphere
func WithModel(path string) Option {
	return func(o *options) { o.model = path }
}

// WithSampling configures the distribution a point cloud is drawn from
// when no coordinates are given. Nil mean or cov keep the defaults.
func WithSampling(n int, mean []float64, cov [][]float64) Option {
	return func(o *options) {
		o.samples = n
		if mean != nil {
			o.mean = mean
		}
		if cov != nil {
			o.cov = cov
		}
	}
}

// WithSource sets the random source used for sampling
func WithSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

func buildOptions(defaultColor color.RGBA, opts []Option) options {
	o := options{
		color:     defaultColor,
		scale:     DefaultPointScale,
		thickness: DefaultThickness,
		model:     DefaultPointModel,
		samples:   DefaultSampleCount,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// spawnPoint instantiates one point model at pos
func spawnPoint(s Scene, o options, pos geometry.Vector3) (*scene.Node, error) {
	n, err := s.LoadModel(o.model)
	if err != nil {
		return nil, err
	}
	n.SetScale(o.scale)
	n.SetColor(o.color)
	n.SetPos(pos.X, pos.Y, pos.Z)
	return n, nil
}

func release(nodes []*scene.Node) {
	for _, n := range nodes {
		n.Remove()
	}
}
