// Package analysis summarizes the data sets the viewer can display
package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/space3d/pkg/geometry"
	"github.com/philipparndt/space3d/pkg/stats"
	"github.com/philipparndt/space3d/pkg/stl"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MeshSummary contains various measurements of an STL model
type MeshSummary struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeMesh measures an STL model
func AnalyzeMesh(model *stl.Model) *MeshSummary {
	result := &MeshSummary{
		BoundingBox:   model.BoundingBox(),
		TriangleCount: len(model.Triangles),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range model.Triangles {
		result.SurfaceArea += triangle.Area()
		for _, length := range []float64{
			triangle.V1.Distance(triangle.V2),
			triangle.V2.Distance(triangle.V3),
			triangle.V3.Distance(triangle.V1),
		} {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
			result.EdgeCount++
		}
	}

	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}
	return result
}

// CloudSummary describes a point cloud
type CloudSummary struct {
	Count       int
	Mean        geometry.Vector3
	BoundingBox geometry.BoundingBox
	Covariance  *mat.SymDense
	// Spread is the standard deviation along each principal axis,
	// largest first
	Spread [3]float64
}

// AnalyzeCloud computes the sample statistics of the rows of an N×3
// table
func AnalyzeCloud(x mat.Matrix) (*CloudSummary, error) {
	r, c := x.Dims()
	if c != 3 {
		return nil, fmt.Errorf("coordinate table is %dx%d, want Nx3", r, c)
	}

	result := &CloudSummary{Count: r, BoundingBox: geometry.NewBoundingBox()}
	var mean [3]float64
	for j := range mean {
		mean[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}
	result.Mean = geometry.FromSlice(mean[:])
	for i := 0; i < r; i++ {
		result.BoundingBox.Extend(geometry.FromSlice(mat.Row(nil, i, x)))
	}

	if r < 2 {
		return result, nil
	}
	result.Covariance = mat.NewSymDense(3, nil)
	stat.CovarianceMatrix(result.Covariance, x, nil)

	axes, err := stats.PrincipalAxes(x)
	if err != nil {
		return nil, err
	}
	for i := range result.Spread {
		result.Spread[i] = floats.Norm(mat.Row(nil, i, axes), 2)
	}
	return result, nil
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
