package drawable

import (
	"fmt"

	"github.com/philipparndt/space3d/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// column returns v as a 3×1 matrix
func column(v geometry.Vector3) *mat.Dense {
	return mat.NewDense(3, 1, v.Slice())
}

// leftMultiply computes m·v for a k×3 matrix m
func leftMultiply(m mat.Matrix, v geometry.Vector3) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("left operand: %w", ErrShape)
	}
	r, c := m.Dims()
	if c != 3 {
		return nil, fmt.Errorf("left operand is %dx%d, want kx3: %w", r, c, ErrShape)
	}
	var out mat.Dense
	out.Mul(m, column(v))
	return &out, nil
}

// rightMultiply computes vᵀ·m for a 3×k matrix m
func rightMultiply(v geometry.Vector3, m mat.Matrix) (*mat.Dense, error) {
	if m == nil {
		return nil, fmt.Errorf("right operand: %w", ErrShape)
	}
	r, c := m.Dims()
	if r != 3 {
		return nil, fmt.Errorf("right operand is %dx%d, want 3xk: %w", r, c, ErrShape)
	}
	var out mat.Dense
	out.Mul(column(v).T(), m)
	return &out, nil
}
