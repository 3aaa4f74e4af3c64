// SPDX-License-Identifier: MIT

package rational

import (
	"fmt"
	"math/big"
)

// Matrix is a row-major rational matrix: Matrix[i] is row i.
type Matrix []Vector

// FromFloatRows snaps a rectangular float matrix into exact rationals.
func FromFloatRows(rows [][]float64, maxDen int64) (Matrix, error) {
	m := make(Matrix, len(rows))
	var err error
	for i, row := range rows {
		if i > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("FromFloatRows: row %d: %w", i, ErrLengthMismatch)
		}
		if m[i], err = FromFloats(row, maxDen); err != nil {
			return nil, fmt.Errorf("FromFloatRows: row %d: %w", i, err)
		}
	}

	return m, nil
}

// MatVec returns m·v.
// Complexity: O(rows*cols) big.Rat operations.
func MatVec(m Matrix, v Vector) (Vector, error) {
	out := make(Vector, len(m))
	var err error
	for i, row := range m {
		if out[i], err = Dot(row, v); err != nil {
			return nil, fmt.Errorf("MatVec: row %d: %w", i, err)
		}
	}

	return out, nil
}

// RREF reduces the rows to reduced row-echelon form by exact Gauss-Jordan
// elimination and returns the reduced copy plus the pivot column indices in
// ascending order. The input is not modified.
//
// Implementation:
//   - Stage 1: deep-copy rows (all must share one width, else ErrLengthMismatch).
//   - Stage 2: for each column left→right pick the first row at or below the
//     current pivot row with a non-zero entry, swap it up, scale to 1.
//   - Stage 3: eliminate the column from every other row.
//
// Pivot columns of the RREF are unique, so the pivot-row choice affects only
// intermediate values, never the result.
//
// Complexity: O(r·c·min(r,c)) big.Rat operations.
func RREF(rows []Vector, width int) (Matrix, []int, error) {
	m := make(Matrix, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, nil, fmt.Errorf("RREF: row %d has %d entries, want %d: %w", i, len(row), width, ErrLengthMismatch)
		}
		m[i] = row.Clone()
	}

	pivots := make([]int, 0, min(len(m), width))
	inv, factor := new(big.Rat), new(big.Rat)
	r := 0
	var col, i, j int
	for col = 0; col < width && r < len(m); col++ {
		sel := -1
		for i = r; i < len(m); i++ {
			if m[i][col].Sign() != 0 {
				sel = i
				break
			}
		}
		if sel < 0 {
			continue // free column
		}
		m[r], m[sel] = m[sel], m[r]

		inv.Inv(m[r][col])
		for j = col; j < width; j++ {
			m[r][j].Mul(m[r][j], inv)
		}
		for i = 0; i < len(m); i++ {
			if i == r || m[i][col].Sign() == 0 {
				continue
			}
			factor.Set(m[i][col])
			if err := m[i].SubScaled(factor, m[r]); err != nil {
				return nil, nil, fmt.Errorf("RREF: %w", err)
			}
		}
		pivots = append(pivots, col)
		r++
	}

	return m, pivots, nil
}

// FreeColumns returns the column indices in [0,width) that are not pivots, ascending.
func FreeColumns(pivots []int, width int) []int {
	isPivot := make([]bool, width)
	for _, p := range pivots {
		if p >= 0 && p < width {
			isPivot[p] = true
		}
	}
	free := make([]int, 0, width)
	for j := 0; j < width; j++ {
		if !isPivot[j] {
			free = append(free, j)
		}
	}

	return free
}
