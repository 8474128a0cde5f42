package recorder

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/philipparndt/space3d/internal/task"
)

// Capturer grabs the current framebuffer
type Capturer interface {
	Capture() (image.Image, error)
}

// CapturerFunc adapts a function to Capturer
type CapturerFunc func() (image.Image, error)

func (f CapturerFunc) Capture() (image.Image, error) {
	return f()
}

// SaveScreenshot captures one frame and writes it as PNG to path,
// overwriting any previous screenshot.
func SaveScreenshot(c Capturer, path string) error {
	img, err := c.Capture()
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return f.Close()
}

// Screenshotter saves a screenshot on the next scheduler step, once the
// frame has been drawn.
type Screenshotter struct {
	tasks   *task.Manager
	capture Capturer
	path    string
	log     *slog.Logger

	pending *task.Task
}

// NewScreenshotter creates a screenshotter writing to path
func NewScreenshotter(tasks *task.Manager, c Capturer, path string, log *slog.Logger) *Screenshotter {
	if log == nil {
		log = slog.Default()
	}
	return &Screenshotter{tasks: tasks, capture: c, path: path, log: log}
}

// Screenshot schedules a capture. Requests made before the pending one
// ran are merged into it.
func (s *Screenshotter) Screenshot() error {
	if s.pending.Active() {
		return nil
	}
	s.pending = s.tasks.Add("Screenshot", func(*task.Task) task.Status {
		if err := SaveScreenshot(s.capture, s.path); err != nil {
			s.log.Error("failed to save screenshot", "err", err)
			return task.Done
		}
		s.log.Info("Screenshot saved", "path", s.path)
		return task.Done
	})
	return nil
}
