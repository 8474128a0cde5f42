// Package control turns raw window input into camera, recording and
// window state changes.
package control

import (
	"log/slog"
	"strings"

	"github.com/philipparndt/space3d/internal/camera"
)

// EventKind enumerates the input the viewer reacts to
type EventKind int

const (
	MouseDown EventKind = iota // primary button pressed
	MouseUp                    // primary button released
	WheelUp
	WheelDown
	KeyPress
)

// Event is one input occurrence. Cursor is only meaningful when
// OnWindow is set.
type Event struct {
	Kind     EventKind
	Key      string
	Cursor   camera.Cursor
	OnWindow bool
}

// Window receives window property requests
type Window interface {
	SetFullscreen(on bool)
}

// Recorder is toggled by the record key
type Recorder interface {
	Toggle() error
}

// Screenshotter saves a single frame
type Screenshotter interface {
	Screenshot() error
}

// Bindings maps actions to key names such as "f" or "f9"
type Bindings struct {
	Fullscreen string `toml:"fullscreen"`
	Record     string `toml:"record"`
	Screenshot string `toml:"screenshot"`
}

// DefaultBindings returns f, r and F9
func DefaultBindings() Bindings {
	return Bindings{Fullscreen: "f", Record: "r", Screenshot: "f9"}
}

// Controller owns the interaction state shared between input events and
// the per-frame callbacks.
type Controller struct {
	orbit    *camera.Orbit
	drag     camera.Drag
	window   Window
	recorder Recorder
	shooter  Screenshotter
	keys     Bindings
	log      *slog.Logger

	fullscreen bool
}

// New wires a controller. recorder and shooter may be nil to disable
// the corresponding keys.
func New(orbit *camera.Orbit, window Window, recorder Recorder, shooter Screenshotter, keys Bindings, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		orbit:    orbit,
		window:   window,
		recorder: recorder,
		shooter:  shooter,
		keys:     keys,
		log:      log,
	}
}

// SetFullscreen records the initial window mode without issuing a
// request.
func (c *Controller) SetFullscreen(on bool) {
	c.fullscreen = on
}

// Fullscreen reports the requested window mode
func (c *Controller) Fullscreen() bool {
	return c.fullscreen
}

// Dragging reports whether a camera drag is active
func (c *Controller) Dragging() bool {
	return c.drag.Tracking()
}

// Handle applies one input event
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case MouseDown:
		c.drag.Begin(ev.Cursor, ev.OnWindow)
	case MouseUp:
		c.drag.End()
	case WheelUp:
		c.orbit.ZoomIn()
	case WheelDown:
		c.orbit.ZoomOut()
	case KeyPress:
		c.handleKey(ev.Key)
	}
}

func (c *Controller) handleKey(key string) {
	switch {
	case matches(key, c.keys.Fullscreen):
		c.ToggleFullscreen()
	case matches(key, c.keys.Record) && c.recorder != nil:
		if err := c.recorder.Toggle(); err != nil {
			c.log.Error("failed to save recording", "err", err)
		}
	case matches(key, c.keys.Screenshot) && c.shooter != nil:
		if err := c.shooter.Screenshot(); err != nil {
			c.log.Error("failed to save screenshot", "err", err)
		}
	}
}

func matches(key, binding string) bool {
	return binding != "" && strings.EqualFold(key, binding)
}

// ToggleFullscreen flips the window mode and asks the window to apply it
func (c *Controller) ToggleFullscreen() {
	c.fullscreen = !c.fullscreen
	if c.window != nil {
		c.window.SetFullscreen(c.fullscreen)
	}
}

// TrackMouse is the per-frame drag update
func (c *Controller) TrackMouse(cursor camera.Cursor, onWindow bool) {
	c.drag.Tick(c.orbit, cursor, onWindow)
}
