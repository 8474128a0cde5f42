package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/philipparndt/space3d/pkg/analysis"
	"github.com/philipparndt/space3d/pkg/points"
	"github.com/philipparndt/space3d/pkg/stl"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a points or STL file",
	Long:  "Show point count, mean, spread and bounding box of a CSV point file, or triangle count, surface area and dimensions of an STL file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if strings.EqualFold(filepath.Ext(filename), ".stl") {
		model, err := stl.Parse(filename)
		if err != nil {
			return fmt.Errorf("failed to parse STL file: %w", err)
		}
		printMesh(out, filename, model)
		return nil
	}

	x, err := points.ReadFile(filename)
	if err != nil {
		return err
	}
	result, err := analysis.AnalyzeCloud(x)
	if err != nil {
		return err
	}
	printCloud(out, filename, result)
	return nil
}

func printMesh(w io.Writer, filename string, model *stl.Model) {
	result := analysis.AnalyzeMesh(model)

	fmt.Fprintln(w, "STL File Information")
	fmt.Fprintln(w, "====================")
	if model.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintf(w, "Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(w, "  Size: %s\n\n", analysis.FormatVector(result.Dimensions))

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgEdgeLength)
}

func printCloud(w io.Writer, filename string, result *analysis.CloudSummary) {
	fmt.Fprintln(w, "Point Cloud Information")
	fmt.Fprintln(w, "=======================")
	fmt.Fprintf(w, "File: %s\n\n", filename)

	fmt.Fprintf(w, "Points: %d\n", result.Count)
	fmt.Fprintf(w, "Mean: %s\n\n", analysis.FormatVector(result.Mean))

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))

	if result.Covariance == nil {
		return
	}
	fmt.Fprintln(w, "\nCovariance:")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(w, "  %10.6f %10.6f %10.6f\n", result.Covariance.At(i, 0), result.Covariance.At(i, 1), result.Covariance.At(i, 2))
	}
	fmt.Fprintf(w, "\nPrincipal spread: %.6f %.6f %.6f\n", result.Spread[0], result.Spread[1], result.Spread[2])
}
