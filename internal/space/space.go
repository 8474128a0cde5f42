// Package space builds the static scenery of the viewer and hands out
// drawables bound to its scene graph.
package space

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/philipparndt/space3d/internal/drawable"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

const labelScale = 0.5

var (
	axisColor = scene.RGBA(0, 0, 0, 1)
	gridColor = scene.RGBA(0.5, 0.5, 0.5, 1)

	// BasisColors paint the rows of a basis yellow, magenta and cyan
	BasisColors = [3]color.RGBA{
		scene.RGBA(1, 1, 0, 1),
		scene.RGBA(1, 0, 1, 1),
		scene.RGBA(0, 1, 1, 1),
	}
)

// Space is a scene graph plus the helpers to populate it
type Space struct {
	graph *scene.Graph
	log   *slog.Logger
}

// New wraps g
func New(g *scene.Graph, log *slog.Logger) *Space {
	if log == nil {
		log = slog.Default()
	}
	return &Space{graph: g, log: log}
}

// Graph returns the underlying scene graph
func (s *Space) Graph() *scene.Graph {
	return s.graph
}

// CreateAxes draws the three positive half axes from the origin and
// labels their tips.
func (s *Space) CreateAxes(length float64) *scene.Node {
	axes := scene.NewLineSegs("axes")
	axes.SetThickness(4)
	axes.SetColor(axisColor)
	for _, tip := range []geometry.Vector3{{X: length}, {Y: length}, {Z: length}} {
		axes.MoveTo(geometry.Vector3{})
		axes.DrawTo(tip)
	}
	node := s.graph.AttachLines(axes)

	s.CreateAxisLabel("X", geometry.NewVector3(length+0.3, 0, 0), axisColor)
	s.CreateAxisLabel("Y", geometry.NewVector3(0, length+0.3, 0), axisColor)
	s.CreateAxisLabel("Z", geometry.NewVector3(0, 0, length+0.3), axisColor)
	return node
}

// CreateGrid draws a square grid on the XY plane spanning ±size cells
func (s *Space) CreateGrid(size int, spacing float64) *scene.Node {
	grid := scene.NewLineSegs("grid")
	grid.SetColor(gridColor)
	extent := float64(size) * spacing
	for i := -size; i <= size; i++ {
		offset := float64(i) * spacing
		grid.MoveTo(geometry.NewVector3(offset, -extent, 0))
		grid.DrawTo(geometry.NewVector3(offset, extent, 0))
		grid.MoveTo(geometry.NewVector3(-extent, offset, 0))
		grid.DrawTo(geometry.NewVector3(extent, offset, 0))
	}
	return s.graph.AttachLines(grid)
}

// CreateAxisLabel places centered text at pos that always faces the
// camera
func (s *Space) CreateAxisLabel(text string, pos geometry.Vector3, c color.RGBA) *scene.Node {
	node := s.graph.AttachText(scene.TextNode{
		Name:      text,
		Text:      text,
		Color:     c,
		Align:     scene.AlignCenter,
		Billboard: true,
	})
	node.SetScale(labelScale)
	node.SetPos(pos.X, pos.Y, pos.Z)
	return node
}

func (s *Space) CreateVector(end geometry.Vector3, opts ...drawable.Option) *drawable.Vector {
	return drawable.NewVector(s.graph, end, opts...)
}

func (s *Space) CreatePoint(pos geometry.Vector3, opts ...drawable.Option) (*drawable.Point, error) {
	return drawable.NewPoint(s.graph, pos, opts...)
}

// CreatePointCloud draws x, or a sampled demo cloud when x is nil
func (s *Space) CreatePointCloud(x mat.Matrix, opts ...drawable.Option) (*drawable.PointCloud, error) {
	return drawable.NewPointCloud(s.graph, x, opts...)
}

// Basis is three labeled vectors drawn from the origin
type Basis struct {
	space   *Space
	Vectors [3]*drawable.Vector
	Labels  [3]*scene.Node
	deleted bool
}

// ErrDeleted is returned when redrawing a basis after Delete
var ErrDeleted = errors.New("basis was deleted")

var basisNames = [3]string{"x", "y", "z"}

// DrawNewBasis draws the rows of the 3×3 matrix v as vectors from the
// origin and labels their tips x, y and z.
func (s *Space) DrawNewBasis(v mat.Matrix) (*Basis, error) {
	if err := checkBasis(v); err != nil {
		return nil, err
	}
	b := &Basis{space: s}
	for i := range b.Vectors {
		row := geometry.FromSlice(mat.Row(nil, i, v))
		b.Vectors[i] = s.CreateVector(row, drawable.WithColor(BasisColors[i]), drawable.WithThickness(5))
		b.Labels[i] = s.CreateAxisLabel(basisNames[i], row.Mul(1.1), BasisColors[i])
	}
	return b, nil
}

// Redraw moves the basis to the rows of v. A deleted basis stays
// deleted.
func (b *Basis) Redraw(v mat.Matrix) error {
	if b.deleted {
		return ErrDeleted
	}
	if err := checkBasis(v); err != nil {
		return err
	}
	for i, vec := range b.Vectors {
		row := geometry.FromSlice(mat.Row(nil, i, v))
		vec.Redraw(row)
		tip := row.Mul(1.1)
		b.Labels[i].SetPos(tip.X, tip.Y, tip.Z)
	}
	return nil
}

// Delete removes the vectors and their labels
func (b *Basis) Delete() {
	b.deleted = true
	for i := range b.Vectors {
		b.Vectors[i].Delete()
		b.Labels[i].Remove()
	}
}

func checkBasis(v mat.Matrix) error {
	if r, c := v.Dims(); r != 3 || c != 3 {
		return fmt.Errorf("basis is %dx%d, want 3x3: %w", r, c, drawable.ErrShape)
	}
	return nil
}

// LoadMesh adds the model at path to the scene. A failed load is logged
// and returns nil.
func (s *Space) LoadMesh(path string) *scene.Node {
	node, err := s.graph.LoadModel(path)
	if err != nil {
		s.log.Error("Failed to load model", "path", path, "err", err)
		return nil
	}
	return node
}
