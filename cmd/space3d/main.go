package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/space3d/internal/app"
	"github.com/philipparndt/space3d/internal/config"
	"github.com/philipparndt/space3d/internal/content"
	"github.com/philipparndt/space3d/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	pointsFile string
	meshFile   string
	fullscreen bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "space3d",
	Short: "Interactive 3D space for points, point clouds and vectors",
	Long: `space3d opens a window with coordinate axes and a grid and draws a
point cloud with its principal axes. Drag with the left mouse button to
orbit, scroll to zoom, press f for fullscreen, r to record a GIF and F9
for a screenshot.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	RunE: runViewer,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (default "+config.DefaultPath+" if present)")
	rootCmd.Flags().StringVarP(&pointsFile, "points", "p", "", "CSV file with x,y,z rows to draw instead of the sampled cloud; reloaded on change")
	rootCmd.Flags().StringVarP(&meshFile, "mesh", "m", "", "Model file to load into the scene (STL or any format raylib reads)")
	rootCmd.Flags().BoolVarP(&fullscreen, "fullscreen", "f", false, "Start in fullscreen mode")
}

func runViewer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fullscreen") {
		cfg.Window.Fullscreen = fullscreen
	}
	return app.Run(cfg, content.Options{PointsFile: pointsFile, MeshFile: meshFile}, slog.Default())
}

func main() {
	markFileFlags()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
