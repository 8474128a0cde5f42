package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PrincipalAxes returns the principal axes of the rows of x as the rows
// of a 3×3 matrix, largest variance first. Each axis is scaled to one
// standard deviation along it.
func PrincipalAxes(x mat.Matrix) (*mat.Dense, error) {
	r, c := x.Dims()
	if c != 3 {
		return nil, fmt.Errorf("samples are %dx%d, want Nx3", r, c)
	}
	if r < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", r)
	}

	cov := mat.NewSymDense(3, nil)
	stat.CovarianceMatrix(cov, x, nil)

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return nil, fmt.Errorf("eigen decomposition failed")
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Values are ascending
	axes := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		col := 2 - i
		scale := math.Sqrt(math.Max(values[col], 0))
		for j := 0; j < 3; j++ {
			axes.Set(i, j, vecs.At(j, col)*scale)
		}
	}
	return axes, nil
}
