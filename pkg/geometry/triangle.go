package geometry

// Triangle is a single mesh facet with its stored normal
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal computes the facet normal from the winding order
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2
}

// Center returns the centroid
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// BoundingBox is an axis aligned box
type BoundingBox struct {
	Min, Max Vector3
	empty    bool
}

// NewBoundingBox returns an empty box that grows with Extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{empty: true}
}

// Extend grows the box to contain p
func (b *BoundingBox) Extend(p Vector3) {
	if b.empty {
		b.Min, b.Max, b.empty = p, p, false
		return
	}
	b.Min = Vector3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
	b.Max = Vector3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
}

// Center returns the midpoint of the box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}
