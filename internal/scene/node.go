package scene

import (
	"image/color"

	"github.com/philipparndt/space3d/pkg/geometry"
)

// NodeID identifies a node for the lifetime of its graph. IDs are never
// reused.
type NodeID uint64

// Kind tells the renderer how to draw a node
type Kind int

const (
	KindModel Kind = iota // instance of a loaded asset
	KindLines             // line segments from a LineSegs builder
	KindText              // text label
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindLines:
		return "lines"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Align is the horizontal alignment of a text node
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Segment is one straight line piece of a lines node
type Segment struct {
	From, To  geometry.Vector3
	Color     color.RGBA
	Thickness float64
}

// Node is an addressable entry in the render graph. A node handle stays
// valid after Remove but is no longer drawn.
type Node struct {
	id    NodeID
	graph *Graph

	Kind  Kind
	Name  string
	Pos   geometry.Vector3
	Scale float64
	Color color.RGBA

	// KindModel
	Path  string
	Asset Asset

	// KindLines
	Segments []Segment

	// KindText
	Text      string
	Align     Align
	Billboard bool
}

// ID returns the node identifier
func (n *Node) ID() NodeID {
	return n.id
}

// SetPos moves the node
func (n *Node) SetPos(x, y, z float64) {
	n.Pos = geometry.NewVector3(x, y, z)
}

// SetScale sets a uniform scale
func (n *Node) SetScale(s float64) {
	n.Scale = s
}

// SetColor sets the node tint
func (n *Node) SetColor(c color.RGBA) {
	n.Color = c
}

// Attached reports whether the node is still part of its graph
func (n *Node) Attached() bool {
	return n.graph != nil && n.graph.nodes[n.id] == n
}

// Remove detaches the node from its graph. It returns false when the
// node was already removed.
func (n *Node) Remove() bool {
	if n.graph == nil {
		return false
	}
	return n.graph.remove(n.id)
}

// RGBA converts normalized float channels into a color, clamping each
// channel to [0, 1].
func RGBA(r, g, b, a float64) color.RGBA {
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: channel(a)}
}

func channel(v float64) uint8 {
	v = geometry.Clamp(v, 0, 1)
	return uint8(v*255 + 0.5)
}
