// Package app wires the viewer together and runs the frame loop
package app

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/philipparndt/space3d/internal/camera"
	"github.com/philipparndt/space3d/internal/config"
	"github.com/philipparndt/space3d/internal/content"
	"github.com/philipparndt/space3d/internal/control"
	"github.com/philipparndt/space3d/internal/engine"
	"github.com/philipparndt/space3d/internal/recorder"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/internal/space"
	"github.com/philipparndt/space3d/internal/task"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/philipparndt/space3d/pkg/watcher"
)

// Run opens the window and blocks until it is closed
func Run(cfg config.Config, opts content.Options, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	win := engine.Open(cfg.Window)
	defer win.Close()

	graph := scene.New(engine.Loader{}, log)
	defer graph.Close()

	bg := cfg.Scene.Background
	renderer := engine.NewRenderer(cfg.Camera.Fovy, color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: bg[3]})

	tasks := task.NewManager(log)
	orbit := newOrbit(cfg.Camera)
	rec := recorder.New(cfg.Recorder(), tasks, win, log)
	shots := recorder.NewScreenshotter(tasks, win, cfg.Screenshot.Path, log)
	ctl := control.New(orbit, win, rec, shots, cfg.Keys, log)
	ctl.SetFullscreen(cfg.Window.Fullscreen)

	renderer.SetCamera(orbit.Update())
	tasks.Add("UpdateCamera", func(*task.Task) task.Status {
		renderer.SetCamera(orbit.Update())
		return task.Cont
	})
	tasks.Add("TrackMouse", func(*task.Task) task.Status {
		ctl.TrackMouse(engine.Cursor())
		return task.Cont
	})

	scenery, err := content.Build(space.New(graph, log), cfg, opts, log)
	if err != nil {
		return err
	}

	var changes <-chan string
	if opts.PointsFile != "" {
		fw, err := watcher.NewFileWatcher(500*time.Millisecond, log)
		if err != nil {
			log.Warn("Failed to set up file watching, auto-reload will not be available", "err", err)
		} else {
			defer fw.Close()
			if err := fw.Watch(opts.PointsFile); err != nil {
				log.Warn("Failed to watch points file", "path", opts.PointsFile, "err", err)
			} else {
				log.Info("Watching file for changes", "path", opts.PointsFile)
				changes = fw.Changes()
			}
		}
	}

	for !win.ShouldClose() {
		for _, ev := range engine.PollEvents() {
			ctl.Handle(ev)
		}

		select {
		case <-changes:
			scenery.Reload(opts.PointsFile)
		default:
		}

		// Tasks run inside the frame so captures see the drawn scene
		renderer.BeginFrame(graph)
		tasks.Step()
		if rec.Recording() {
			renderer.DrawStatus(fmt.Sprintf("REC %d/%d", rec.Frames(), cfg.Record.MaxFrames))
		}
		renderer.EndFrame()
	}

	if rec.Recording() {
		if err := rec.Stop(); err != nil {
			return fmt.Errorf("failed to save recording: %w", err)
		}
	}
	return nil
}

func newOrbit(c config.Camera) *camera.Orbit {
	o := camera.NewOrbit()
	o.Radius = c.Radius
	o.Theta = c.Theta
	o.Phi = c.Phi
	o.Target = geometry.FromSlice(c.Target[:])
	o.MinRadius = c.MinRadius
	o.ZoomStep = c.ZoomStep
	o.Sensitivity = c.Sensitivity
	return o
}
