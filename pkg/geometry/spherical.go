package geometry

import "math"

// Spherical is a point in spherical coordinates. Theta is the azimuth
// in the XY plane, Phi the polar angle measured from +Z.
type Spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// Cartesian converts s to a Z-up cartesian position.
func (s Spherical) Cartesian() Vector3 {
	sinPhi := math.Sin(s.Phi)
	return Vector3{
		X: s.Radius * sinPhi * math.Cos(s.Theta),
		Y: s.Radius * sinPhi * math.Sin(s.Theta),
		Z: s.Radius * math.Cos(s.Phi),
	}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
