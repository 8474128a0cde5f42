// Package recorder captures the window into an animated GIF
package recorder

import (
	"image"
	"log/slog"

	"github.com/philipparndt/space3d/internal/task"
)

// Config controls a recording session
type Config struct {
	Path      string // output file, overwritten per session
	Interval  int    // capture every Interval-th frame
	MaxFrames int    // stop automatically after this many captures
	FPS       int    // playback rate of the GIF
	MaxWidth  int    // downscale wider frames, 0 keeps the window size
}

// DefaultConfig returns the settings of the stock viewer
func DefaultConfig() Config {
	return Config{
		Path:      "record.gif",
		Interval:  10,
		MaxFrames: 150,
		FPS:       6,
	}
}

// Recorder toggles between idle and recording. While recording it owns
// one task on the frame scheduler.
type Recorder struct {
	cfg     Config
	tasks   *task.Manager
	capture Capturer
	log     *slog.Logger

	task   *task.Task
	frames []image.Image
	failed int
	saves  int
}

// New creates an idle recorder
func New(cfg Config, tasks *task.Manager, c Capturer, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 1
	}
	return &Recorder{cfg: cfg, tasks: tasks, capture: c, log: log}
}

// Recording reports whether a session is active
func (r *Recorder) Recording() bool {
	return r.task.Active()
}

// Frames returns the number of frames captured in the current session
func (r *Recorder) Frames() int {
	return len(r.frames)
}

// Saved returns how many GIF files were written so far
func (r *Recorder) Saved() int {
	return r.saves
}

// Toggle starts a session when idle and stops the running one otherwise
func (r *Recorder) Toggle() error {
	if r.Recording() {
		return r.Stop()
	}
	r.Start()
	return nil
}

// Start begins a session. It returns false if one is already running.
func (r *Recorder) Start() bool {
	if r.Recording() {
		return false
	}
	r.frames = nil
	r.failed = 0
	r.task = r.tasks.Add("RecordScreen", r.tick)
	r.log.Info("Recording started. Press 'r' to stop.")
	return true
}

// Stop ends the session and writes the GIF if any frame was captured.
// Stopping an idle recorder does nothing.
func (r *Recorder) Stop() error {
	if !r.Recording() {
		return nil
	}
	r.tasks.Remove(r.task)
	r.task = nil

	frames := r.frames
	r.frames = nil
	if r.failed > 0 {
		r.log.Warn("frames skipped during recording", "count", r.failed)
	}
	if len(frames) == 0 {
		r.log.Info("Recording stopped, nothing captured.")
		return nil
	}
	if err := WriteGIF(r.cfg.Path, frames, r.cfg.FPS, r.cfg.MaxWidth); err != nil {
		return err
	}
	r.saves++
	r.log.Info("Recording stopped. GIF saved.", "path", r.cfg.Path, "frames", len(frames))
	return nil
}

func (r *Recorder) tick(t *task.Task) task.Status {
	if t.Frame%r.cfg.Interval != 0 {
		return task.Cont
	}
	img, err := r.capture.Capture()
	if err != nil {
		r.failed++
		r.log.Warn("frame capture failed, skipping frame", "frame", t.Frame, "err", err)
		return task.Cont
	}
	r.frames = append(r.frames, img)
	if r.cfg.MaxFrames > 0 && len(r.frames) >= r.cfg.MaxFrames {
		if err := r.Stop(); err != nil {
			r.log.Error("failed to save recording", "err", err)
		}
	}
	return task.Cont
}
