package drawable

import (
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// Vector is an arrow-less line segment from a start point to its tip
type Vector struct {
	scene Scene
	opts  options
	start geometry.Vector3
	end   geometry.Vector3
	node  *scene.Node
}

// NewVector draws a vector ending at end. The start defaults to the
// origin.
func NewVector(s Scene, end geometry.Vector3, opts ...Option) *Vector {
	v := &Vector{scene: s, opts: buildOptions(DefaultVectorColor, opts)}
	v.RedrawFrom(v.opts.start, end)
	return v
}

// Pos returns the tip
func (v *Vector) Pos() geometry.Vector3 {
	return v.end
}

// Start returns the tail
func (v *Vector) Start() geometry.Vector3 {
	return v.start
}

// Nodes returns the owned scene nodes
func (v *Vector) Nodes() []*scene.Node {
	if v.node == nil {
		return nil
	}
	return []*scene.Node{v.node}
}

// Redraw moves the tip, keeping start, color and thickness
func (v *Vector) Redraw(end geometry.Vector3) {
	v.RedrawFrom(v.start, end)
}

// RedrawFrom replaces the segment with one from start to end
func (v *Vector) RedrawFrom(start, end geometry.Vector3) {
	v.Delete()

	ls := scene.NewLineSegs("vector")
	ls.SetColor(v.opts.color)
	ls.SetThickness(v.opts.thickness)
	ls.MoveTo(start)
	ls.DrawTo(end)

	v.node = v.scene.AttachLines(ls)
	v.start, v.end = start, end
}

// Delete releases the owned node. Calling it again is a no-op.
func (v *Vector) Delete() {
	if v.node != nil {
		v.node.Remove()
		v.node = nil
	}
}

// LeftMultiply returns m·v where m is k×3
func (v *Vector) LeftMultiply(m mat.Matrix) (*mat.Dense, error) {
	return leftMultiply(m, v.end)
}

// RightMultiply returns vᵀ·m where m is 3×k
func (v *Vector) RightMultiply(m mat.Matrix) (*mat.Dense, error) {
	return rightMultiply(v.end, m)
}

// Gram returns vᵀ·v
func (v *Vector) Gram() float64 {
	return v.end.Dot(v.end)
}
