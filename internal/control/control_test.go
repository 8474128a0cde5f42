package control

import (
	"errors"
	"testing"

	"github.com/philipparndt/space3d/internal/camera"
	"github.com/stretchr/testify/assert"
)

type fakeWindow struct {
	requests []bool
}

func (w *fakeWindow) SetFullscreen(on bool) { w.requests = append(w.requests, on) }

type counter struct {
	calls int
	err   error
}

func (c *counter) Toggle() error     { c.calls++; return c.err }
func (c *counter) Screenshot() error { c.calls++; return c.err }

func setup() (*Controller, *camera.Orbit, *fakeWindow, *counter, *counter) {
	orbit := camera.NewOrbit()
	win := &fakeWindow{}
	rec, shot := &counter{}, &counter{}
	return New(orbit, win, rec, shot, DefaultBindings(), nil), orbit, win, rec, shot
}

func TestFullscreenToggle(t *testing.T) {
	c, _, win, _, _ := setup()

	c.Handle(Event{Kind: KeyPress, Key: "f"})
	c.Handle(Event{Kind: KeyPress, Key: "F"})
	c.Handle(Event{Kind: KeyPress, Key: "f"})

	assert.Equal(t, []bool{true, false, true}, win.requests)
	assert.True(t, c.Fullscreen())
}

func TestSetFullscreenIssuesNoRequest(t *testing.T) {
	c, _, win, _, _ := setup()
	c.SetFullscreen(true)
	assert.Empty(t, win.requests)

	c.ToggleFullscreen()
	assert.Equal(t, []bool{false}, win.requests)
}

func TestKeysReachActions(t *testing.T) {
	c, _, _, rec, shot := setup()

	c.Handle(Event{Kind: KeyPress, Key: "r"})
	c.Handle(Event{Kind: KeyPress, Key: "f9"})
	c.Handle(Event{Kind: KeyPress, Key: "F9"})
	c.Handle(Event{Kind: KeyPress, Key: "q"})

	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 2, shot.calls)
}

func TestActionErrorsAreNotFatal(t *testing.T) {
	orbit := camera.NewOrbit()
	rec := &counter{err: errors.New("disk full")}
	c := New(orbit, nil, rec, nil, DefaultBindings(), nil)

	c.Handle(Event{Kind: KeyPress, Key: "r"})
	c.Handle(Event{Kind: KeyPress, Key: "f9"})
	c.Handle(Event{Kind: KeyPress, Key: "f"})
	assert.Equal(t, 1, rec.calls)
	assert.True(t, c.Fullscreen())
}

func TestWheelZoom(t *testing.T) {
	c, orbit, _, _, _ := setup()

	c.Handle(Event{Kind: WheelDown})
	c.Handle(Event{Kind: WheelDown})
	assert.Equal(t, 22.0, orbit.Radius)
	c.Handle(Event{Kind: WheelUp})
	assert.Equal(t, 21.0, orbit.Radius)
}

func TestDragOrbitsCamera(t *testing.T) {
	c, orbit, _, _, _ := setup()
	theta := orbit.Theta

	c.TrackMouse(camera.Cursor{X: 0.3}, true)
	assert.Equal(t, theta, orbit.Theta, "no drag without button")

	c.Handle(Event{Kind: MouseDown, Cursor: camera.Cursor{X: 0, Y: 0}, OnWindow: true})
	assert.True(t, c.Dragging())
	c.TrackMouse(camera.Cursor{X: 0.25}, true)
	assert.InDelta(t, theta-0.5, orbit.Theta, 1e-12)

	c.Handle(Event{Kind: MouseUp})
	assert.False(t, c.Dragging())
	c.TrackMouse(camera.Cursor{X: 0.9}, true)
	assert.InDelta(t, theta-0.5, orbit.Theta, 1e-12)
}

func TestCustomBindings(t *testing.T) {
	orbit := camera.NewOrbit()
	win := &fakeWindow{}
	c := New(orbit, win, nil, nil, Bindings{Fullscreen: "f11"}, nil)

	c.Handle(Event{Kind: KeyPress, Key: "f"})
	assert.Empty(t, win.requests)
	c.Handle(Event{Kind: KeyPress, Key: "f11"})
	assert.Equal(t, []bool{true}, win.requests)
	c.Handle(Event{Kind: KeyPress, Key: ""})
	assert.Len(t, win.requests, 1)
}
