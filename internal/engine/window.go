// Package engine binds the scene graph and the input model to raylib.
// Everything here needs a GPU context and must run on the main thread.
package engine

import (
	"errors"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/space3d/internal/config"
)

// ErrCapture is returned when the framebuffer could not be read
var ErrCapture = errors.New("failed to read framebuffer")

// Window is the raylib main window
type Window struct {
	fullscreen bool
}

// Open creates the window. Call Close when done.
func Open(cfg config.Window) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags) // Must be before InitWindow
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	rl.SetTargetFPS(cfg.FPS)

	// Keys are bound by the controller
	rl.SetExitKey(rl.KeyNull)

	w := &Window{}
	if cfg.Fullscreen {
		w.SetFullscreen(true)
	}
	return w
}

// SetFullscreen switches the window mode when it differs from the
// current one
func (w *Window) SetFullscreen(on bool) {
	if rl.IsWindowFullscreen() == on {
		w.fullscreen = on
		return
	}
	rl.ToggleFullscreen()
	w.fullscreen = on
}

// Fullscreen reports the last applied window mode
func (w *Window) Fullscreen() bool {
	return w.fullscreen
}

// ShouldClose reports whether the user asked to close the window
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// Close destroys the window and its GL context
func (w *Window) Close() {
	rl.CloseWindow()
}

// Capture reads the current framebuffer. It must be called between
// BeginFrame and EndFrame after the scene was drawn.
func (w *Window) Capture() (image.Image, error) {
	img := rl.LoadImageFromScreen()
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, ErrCapture
	}
	defer rl.UnloadImage(img)
	return img.ToImage(), nil
}
