package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/philipparndt/space3d/internal/camera"
	"github.com/philipparndt/space3d/internal/config"
	"github.com/philipparndt/space3d/internal/content"
	"github.com/philipparndt/space3d/internal/recorder"
	"github.com/philipparndt/space3d/internal/scene"
	"github.com/philipparndt/space3d/internal/space"
	"github.com/philipparndt/space3d/internal/viewer"
	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderWidth  int
	renderHeight int
	renderFrames int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the scene without a window",
	Long: `Render the scene from the configured camera with the software renderer.
A .png output is a single image; a .gif output is a turntable that orbits
the camera once around the scene.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	renderCmd.Flags().StringVarP(&pointsFile, "points", "p", "", "CSV file with x,y,z rows")
	renderCmd.Flags().StringVarP(&meshFile, "mesh", "m", "", "STL file to load into the scene")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "render.png", "Output file (.png or .gif)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width (default window.width)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height (default window.height)")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 36, "Number of turntable frames for .gif output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	width, height := int(cfg.Window.Width), int(cfg.Window.Height)
	if renderWidth > 0 {
		width = renderWidth
	}
	if renderHeight > 0 {
		height = renderHeight
	}

	log := slog.Default()
	graph := scene.New(viewer.Loader{}, log)
	defer graph.Close()
	if _, err := content.Build(space.New(graph, log), cfg, content.Options{PointsFile: pointsFile, MeshFile: meshFile}, log); err != nil {
		return err
	}

	bg := cfg.Scene.Background
	r := viewer.NewRenderer(width, height, color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: bg[3]})
	orbit := camera.NewOrbit()
	orbit.Radius, orbit.Theta, orbit.Phi = cfg.Camera.Radius, cfg.Camera.Theta, cfg.Camera.Phi
	orbit.Target = geometry.FromSlice(cfg.Camera.Target[:])

	shot := func() image.Image {
		pos, target := orbit.Update()
		return r.Render(graph, viewer.LookAt(pos, target, float64(cfg.Camera.Fovy)))
	}

	switch strings.ToLower(filepath.Ext(renderOutput)) {
	case ".gif":
		if renderFrames <= 0 {
			return fmt.Errorf("--frames must be positive")
		}
		frames := make([]image.Image, 0, renderFrames)
		for i := 0; i < renderFrames; i++ {
			frames = append(frames, shot())
			orbit.Theta += 2 * math.Pi / float64(renderFrames)
		}
		if err := recorder.WriteGIF(renderOutput, frames, cfg.Record.FPS, cfg.Record.MaxWidth); err != nil {
			return err
		}
		log.Info("Turntable saved", "path", renderOutput, "frames", len(frames))
	default:
		if err := recorder.SaveScreenshot(recorder.CapturerFunc(func() (image.Image, error) {
			return shot(), nil
		}), renderOutput); err != nil {
			return err
		}
		log.Info("Render saved", "path", renderOutput)
	}
	return nil
}
