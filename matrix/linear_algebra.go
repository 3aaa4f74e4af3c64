// SPDX-License-Identifier: MIT
// Package matrix provides the dense kernels the subspace solver needs:
// matrix-vector product, matrix product, transpose, element-wise product and
// column stacking. All functions validate fail-fast and return sentinel errors
// wrapped with an operation tag.
//
// Notes:
//   - *Dense operands take a flat-slice fast path; other Matrix values fall
//     back to At/Set loops with identical results.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial accumulator value for dot-product style loops.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opHadamard    = "Hadamard"
	opMatVec      = "MatVec"
	opFromColumns = "FromColumns"
	opCongruence  = "Congruence"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Call only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				if x[j] != 0 { // skip zero multiplications
					acc += d.data[base+j] * x[j]
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// Mul returns a·b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: Time O(r*k*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av, bv float64
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			// i-k-j order keeps both operands row-major friendly
			for i = 0; i < aRows; i++ {
				for k = 0; k < aCols; k++ {
					av = da.data[i*aCols+k]
					if av == 0 {
						continue
					}
					for j = 0; j < bCols; j++ {
						res.data[i*bCols+j] += av * db.data[k*bCols+j]
					}
				}
			}

			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			acc := ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				acc += av * bv
			}
			res.data[i*bCols+j] = acc
		}
	}

	return res, nil
}

// Transpose returns a new matrix mᵀ. The input is never mutated.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Hadamard returns the element-wise product a∘b.
// Hadamard(t, t) is the entry-wise square used by the decoupling report.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			res.data[i*cols+j] = av * bv
		}
	}

	return res, nil
}

// FromColumns stacks equally sized vectors as the columns of a new Dense.
//
// Errors: ErrInvalidDimensions (no columns or empty column), ErrRagged, ErrNaNInf.
// Complexity: Time O(r*c), Space O(r*c).
func FromColumns(cols [][]float64) (*Dense, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, matrixErrorf(opFromColumns, ErrInvalidDimensions)
	}
	rows := len(cols[0])
	res, err := NewDense(rows, len(cols))
	if err != nil {
		return nil, matrixErrorf(opFromColumns, err)
	}
	var i, j int
	for j = 0; j < len(cols); j++ {
		if len(cols[j]) != rows {
			return nil, matrixErrorf(opFromColumns, fmt.Errorf("column %d: %w", j, ErrRagged))
		}
		for i = 0; i < rows; i++ {
			if err = res.Set(i, j, cols[j][i]); err != nil {
				return nil, matrixErrorf(opFromColumns, err)
			}
		}
	}

	return res, nil
}

// Congruence returns aᵀ·q·a, the change of basis of q into the columns of a.
//
// Errors: as Transpose and Mul.
// Complexity: Time O(n³) for n×n operands.
func Congruence(q, a Matrix) (Matrix, error) {
	at, err := Transpose(a)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	qa, err := Mul(q, a)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}
	res, err := Mul(at, qa)
	if err != nil {
		return nil, matrixErrorf(opCongruence, err)
	}

	return res, nil
}
