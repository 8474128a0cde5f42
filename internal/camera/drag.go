// Package camera implements the orbital camera and the drag gesture
// that steers it.
package camera

// Cursor is a cursor sample in normalized window coordinates: both axes
// span [-1, 1] and Y grows upwards.
type Cursor struct {
	X, Y float64
}

// Drag tracks a primary button drag. The zero value is idle.
type Drag struct {
	tracking bool
	hasLast  bool
	last     Cursor
}

// Tracking reports whether a drag is in progress
func (d *Drag) Tracking() bool {
	return d.tracking
}

// Begin starts tracking. ok tells whether the cursor is over the window;
// without it the first sample is taken on the next tick.
func (d *Drag) Begin(c Cursor, ok bool) {
	d.tracking = true
	d.hasLast = ok
	if ok {
		d.last = c
	}
}

// End stops tracking
func (d *Drag) End() {
	d.tracking = false
	d.hasLast = false
}

// Tick feeds the cursor of the current frame. While tracking, the delta
// to the previous sample rotates o. It returns true when o changed.
func (d *Drag) Tick(o *Orbit, c Cursor, ok bool) bool {
	if !d.tracking || !ok {
		return false
	}
	moved := false
	if d.hasLast {
		dx, dy := c.X-d.last.X, c.Y-d.last.Y
		if dx != 0 || dy != 0 {
			o.Rotate(dx, dy)
			moved = true
		}
	}
	d.last = c
	d.hasLast = true
	return moved
}
