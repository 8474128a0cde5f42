package stl

import (
	"github.com/philipparndt/space3d/pkg/geometry"
)

// Model is a triangle soup read from an STL file
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// BoundingBox returns the box around every vertex
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		bbox.Extend(t.V1)
		bbox.Extend(t.V2)
		bbox.Extend(t.V3)
	}
	return bbox
}
