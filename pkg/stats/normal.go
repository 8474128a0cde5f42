// Package stats draws synthetic samples used to populate demo scenes.
package stats

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// ErrCovariance is returned when a covariance matrix is not symmetric
// positive definite.
var ErrCovariance = errors.New("covariance is not positive definite")

// DefaultMean and DefaultCovariance describe the demo point cloud.
var (
	DefaultMean       = []float64{1, 1, 1}
	DefaultCovariance = [][]float64{
		{1, 0, 0.3},
		{0, 2, 0},
		{0.3, 0, 0.5},
	}
)

// Symmetric converts a square row-major table into a symmetric matrix.
// Only the upper triangle is read; a mismatch with the lower triangle
// is reported as an error.
func Symmetric(rows [][]float64) (*mat.SymDense, error) {
	n := len(rows)
	sym := mat.NewSymDense(n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), n)
		}
	}
	for i, row := range rows {
		for j := i; j < n; j++ {
			if rows[j][i] != row[j] {
				return nil, fmt.Errorf("entry (%d,%d) differs from (%d,%d)", i, j, j, i)
			}
			sym.SetSym(i, j, row[j])
		}
	}
	return sym, nil
}

// MultivariateNormal returns an n×d matrix whose rows are independent
// samples of N(mean, cov). A nil src uses a time independent default
// seed of 1.
func MultivariateNormal(mean []float64, cov [][]float64, n int, src rand.Source) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}
	if len(cov) != len(mean) {
		return nil, fmt.Errorf("covariance is %dx%d but mean has %d entries", len(cov), len(cov), len(mean))
	}
	sigma, err := Symmetric(cov)
	if err != nil {
		return nil, fmt.Errorf("invalid covariance: %w", err)
	}
	if src == nil {
		src = rand.NewSource(1)
	}

	dist, ok := distmv.NewNormal(mean, sigma, src)
	if !ok {
		return nil, ErrCovariance
	}

	out := mat.NewDense(n, len(mean), nil)
	row := make([]float64, len(mean))
	for i := 0; i < n; i++ {
		out.SetRow(i, dist.Rand(row))
	}
	return out, nil
}
