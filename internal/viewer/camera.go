package viewer

import (
	"math"

	"github.com/philipparndt/space3d/pkg/geometry"
)

// near is the closest depth that is still drawn
const near = 0.01

// Camera is a Z-up perspective camera
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in radians
}

// LookAt creates a camera at position looking at target with a vertical
// field of view in degrees
func LookAt(position, target geometry.Vector3, fovDegrees float64) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       geometry.NewVector3(0, 0, 1),
		FOV:      fovDegrees * math.Pi / 180,
	}
}

func (c Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Project projects a 3D point to screen coordinates with y down. depth
// is the distance along the view direction; ok is false for points
// behind the near plane.
func (c Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()

	relative := point.Sub(c.Position)
	cx := relative.Dot(right)
	cy := relative.Dot(up)
	depth = relative.Dot(forward)
	if depth <= near {
		return 0, 0, depth, false
	}

	scale := c.PixelsPerUnit(depth, height)
	x = cx*scale + width/2
	y = -cy*scale + height/2
	return x, y, depth, true
}

// PixelsPerUnit is the screen size of one world unit at depth
func (c Camera) PixelsPerUnit(depth, height float64) float64 {
	return height / 2 / (depth * math.Tan(c.FOV/2))
}
