// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dfsolve/matrix"
)

// validateInput checks every precondition of the solver before any iteration.
// Order: nil → shape → finiteness → symmetry → noise vectors.
func validateInput(op string, q matrix.Matrix, v0 [][]float64, tol float64) error {
	if err := matrix.ValidateSquare(q); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrDimensionMismatch, err)
	}
	n := q.Rows()
	if n < 1 {
		return fmt.Errorf("%s: %w: %w", op, ErrDimensionMismatch, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateFinite(q); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := matrix.ValidateSymmetric(q, tol); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrNotSymmetric, err)
	}

	for k, v := range v0 {
		if err := matrix.ValidateVecLen(v, n); err != nil {
			return fmt.Errorf("%s: noise vector %d: %w: %w", op, k, ErrDimensionMismatch, err)
		}
		zero := true
		for i, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%s: noise vector %d[%d]: %w", op, k, i, matrix.ErrNaNInf)
			}
			if x != 0 {
				zero = false
			}
		}
		if zero {
			return fmt.Errorf("%s: noise vector %d: %w", op, k, ErrZeroNoiseVector)
		}
	}

	return nil
}

// denseRows reads q into row slices.
func denseRows(q matrix.Matrix) ([][]float64, error) {
	if d, ok := q.(*matrix.Dense); ok {
		return d.RowsCopy(), nil
	}
	rows := make([][]float64, q.Rows())
	var err error
	for i := range rows {
		rows[i] = make([]float64, q.Cols())
		for j := range rows[i] {
			if rows[i][j], err = q.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return rows, nil
}
