package camera

import (
	"math"

	"github.com/philipparndt/space3d/pkg/geometry"
)

const (
	// MinPhi and MaxPhi keep the camera off the poles
	MinPhi = 0.1
	MaxPhi = math.Pi - 0.1
)

// Orbit is a camera on a sphere around a fixed target
type Orbit struct {
	Radius float64
	Theta  float64
	Phi    float64

	Target      geometry.Vector3
	MinRadius   float64
	ZoomStep    float64
	Sensitivity float64
}

// NewOrbit returns the startup camera: radius 20, looking at (0, 0, 1)
// from 45° azimuth and 45° elevation.
func NewOrbit() *Orbit {
	return &Orbit{
		Radius:      20,
		Theta:       math.Pi / 4,
		Phi:         math.Pi / 4,
		Target:      geometry.NewVector3(0, 0, 1),
		MinRadius:   2,
		ZoomStep:    1,
		Sensitivity: 2,
	}
}

// Position returns the cartesian camera position
func (o *Orbit) Position() geometry.Vector3 {
	return geometry.Spherical{Radius: o.Radius, Theta: o.Theta, Phi: o.Phi}.Cartesian()
}

// Update returns where the camera sits and where it looks
func (o *Orbit) Update() (position, target geometry.Vector3) {
	return o.Position(), o.Target
}

// ZoomIn moves the camera one step closer, never below MinRadius
func (o *Orbit) ZoomIn() {
	o.Radius = math.Max(o.MinRadius, o.Radius-o.ZoomStep)
}

// ZoomOut moves the camera one step away
func (o *Orbit) ZoomOut() {
	o.Radius += o.ZoomStep
}

// Rotate applies a cursor delta in normalized screen units
func (o *Orbit) Rotate(dx, dy float64) {
	o.Theta -= dx * o.Sensitivity
	o.Phi = geometry.Clamp(o.Phi+dy*o.Sensitivity, MinPhi, MaxPhi)
}
