package drawable

import (
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// Point is a single sphere in space
type Point struct {
	scene Scene
	opts  options
	pos   geometry.Vector3
	node  *scene.Node
}

// NewPoint draws a point at pos
func NewPoint(s Scene, pos geometry.Vector3, opts ...Option) (*Point, error) {
	p := &Point{scene: s, opts: buildOptions(DefaultPointColor, opts)}
	if err := p.Redraw(pos); err != nil {
		return nil, err
	}
	return p, nil
}

// Pos returns the coordinate of the last draw, or the zero vector when
// nothing is drawn.
func (p *Point) Pos() geometry.Vector3 {
	return p.pos
}

// Nodes returns the owned scene nodes
func (p *Point) Nodes() []*scene.Node {
	if p.node == nil {
		return nil
	}
	return []*scene.Node{p.node}
}

// Redraw replaces the owned node with one at pos. On failure the point
// owns nothing.
func (p *Point) Redraw(pos geometry.Vector3) error {
	p.Delete()
	n, err := spawnPoint(p.scene, p.opts, pos)
	if err != nil {
		return err
	}
	p.node = n
	p.pos = pos
	return nil
}

// Delete releases the owned node and forgets its coordinate. Calling it
// again is a no-op.
func (p *Point) Delete() {
	if p.node != nil {
		p.node.Remove()
		p.node = nil
	}
	p.pos = geometry.Vector3{}
}

// LeftMultiply returns m·p where m is k×3
func (p *Point) LeftMultiply(m mat.Matrix) (*mat.Dense, error) {
	if p.node == nil {
		return nil, ErrEmpty
	}
	return leftMultiply(m, p.pos)
}

// RightMultiply returns pᵀ·m where m is 3×k
func (p *Point) RightMultiply(m mat.Matrix) (*mat.Dense, error) {
	if p.node == nil {
		return nil, ErrEmpty
	}
	return rightMultiply(p.pos, m)
}

// Gram returns pᵀ·p, zero when nothing is drawn
func (p *Point) Gram() float64 {
	return p.pos.Dot(p.pos)
}
