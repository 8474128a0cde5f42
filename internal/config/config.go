// Package config loads viewer settings from a TOML file
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/space3d/internal/camera"
	"github.com/philipparndt/space3d/internal/control"
	"github.com/philipparndt/space3d/internal/recorder"
	"github.com/philipparndt/space3d/pkg/stats"
)

// DefaultPath is looked up in the working directory when no file is given
const DefaultPath = "space3d.toml"

type Window struct {
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	Title      string `toml:"title"`
	FPS        int32  `toml:"fps"`
	Fullscreen bool   `toml:"fullscreen"`
	MSAA       bool   `toml:"msaa"`
}

type Camera struct {
	Radius      float64    `toml:"radius"`
	Theta       float64    `toml:"theta"`
	Phi         float64    `toml:"phi"`
	Target      [3]float64 `toml:"target"`
	MinRadius   float64    `toml:"min_radius"`
	ZoomStep    float64    `toml:"zoom_step"`
	Sensitivity float64    `toml:"sensitivity"`
	Fovy        float32    `toml:"fovy"`
}

type Scene struct {
	AxesLength  float64  `toml:"axes_length"`
	GridSize    int      `toml:"grid_size"`
	GridSpacing float64  `toml:"grid_spacing"`
	Background  [4]uint8 `toml:"background"`
	ShowBasis   bool     `toml:"show_basis"`
}

type Cloud struct {
	Enabled    bool        `toml:"enabled"`
	Samples    int         `toml:"samples"`
	Mean       []float64   `toml:"mean"`
	Covariance [][]float64 `toml:"covariance"`
	Seed       uint64      `toml:"seed"`
	PointScale float64     `toml:"point_scale"`
	PointModel string      `toml:"point_model"`
}

type Record struct {
	Path      string `toml:"path"`
	Interval  int    `toml:"interval"`
	MaxFrames int    `toml:"max_frames"`
	FPS       int    `toml:"fps"`
	MaxWidth  int    `toml:"max_width"`
}

type Screenshot struct {
	Path string `toml:"path"`
}

// Config is the complete viewer configuration
type Config struct {
	Window     Window           `toml:"window"`
	Camera     Camera           `toml:"camera"`
	Scene      Scene            `toml:"scene"`
	Cloud      Cloud            `toml:"cloud"`
	Record     Record           `toml:"record"`
	Screenshot Screenshot       `toml:"screenshot"`
	Keys       control.Bindings `toml:"keys"`
}

// Default returns the stock configuration
func Default() Config {
	rec := recorder.DefaultConfig()
	return Config{
		Window: Window{Width: 1400, Height: 900, Title: "space3d", FPS: 60, MSAA: true},
		Camera: Camera{
			Radius:      20,
			Theta:       math.Pi / 4,
			Phi:         math.Pi / 4,
			Target:      [3]float64{0, 0, 1},
			MinRadius:   2,
			ZoomStep:    1,
			Sensitivity: 2,
			Fovy:        45,
		},
		Scene: Scene{
			AxesLength:  5,
			GridSize:    10,
			GridSpacing: 1,
			Background:  [4]uint8{255, 255, 255, 255},
			ShowBasis:   true,
		},
		Cloud: Cloud{
			Enabled:    true,
			Samples:    20,
			Mean:       append([]float64(nil), stats.DefaultMean...),
			Covariance: copyRows(stats.DefaultCovariance),
			Seed:       1,
			PointScale: 0.07,
		},
		Record: Record{
			Path:      rec.Path,
			Interval:  rec.Interval,
			MaxFrames: rec.MaxFrames,
			FPS:       rec.FPS,
		},
		Screenshot: Screenshot{Path: "screenshot.png"},
		Keys:       control.DefaultBindings(),
	}
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Load reads path on top of the defaults. A missing file at the default
// path is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.MinRadius <= 0 {
		errs = append(errs, fmt.Errorf("camera.min_radius must be positive"))
	}
	if c.Camera.Radius < c.Camera.MinRadius {
		errs = append(errs, fmt.Errorf("camera.radius %v is below min_radius %v", c.Camera.Radius, c.Camera.MinRadius))
	}
	if c.Camera.ZoomStep <= 0 {
		errs = append(errs, fmt.Errorf("camera.zoom_step must be positive"))
	}
	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera.sensitivity must be positive"))
	}
	if c.Camera.Phi < camera.MinPhi || c.Camera.Phi > camera.MaxPhi {
		errs = append(errs, fmt.Errorf("camera.phi %v is outside [%v, %v]", c.Camera.Phi, camera.MinPhi, camera.MaxPhi))
	}
	if c.Scene.GridSpacing <= 0 {
		errs = append(errs, fmt.Errorf("scene.grid_spacing must be positive"))
	}
	if c.Cloud.Enabled && c.Cloud.Samples <= 0 {
		errs = append(errs, fmt.Errorf("cloud.samples must be positive"))
	}
	if len(c.Cloud.Mean) != 3 || len(c.Cloud.Covariance) != 3 {
		errs = append(errs, fmt.Errorf("cloud.mean and cloud.covariance must be 3 dimensional"))
	}
	for i, row := range c.Cloud.Covariance {
		if len(row) != 3 {
			errs = append(errs, fmt.Errorf("cloud.covariance row %d has %d entries, want 3", i, len(row)))
		}
	}
	if c.Record.Interval <= 0 {
		errs = append(errs, fmt.Errorf("record.interval must be positive"))
	}
	if c.Record.FPS <= 0 {
		errs = append(errs, fmt.Errorf("record.fps must be positive"))
	}
	if c.Record.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("record.max_frames must not be negative"))
	}
	if c.Record.Path == "" || c.Screenshot.Path == "" {
		errs = append(errs, fmt.Errorf("output paths must not be empty"))
	}
	return errors.Join(errs...)
}

// Recorder converts the record section
func (c Config) Recorder() recorder.Config {
	return recorder.Config{
		Path:      c.Record.Path,
		Interval:  c.Record.Interval,
		MaxFrames: c.Record.MaxFrames,
		FPS:       c.Record.FPS,
		MaxWidth:  c.Record.MaxWidth,
	}
}
