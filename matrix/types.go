// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense kernels and the
// coupling-matrix builder. Errors and validators live in dedicated files.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Pair is an undirected coupling between two oscillator indices.
// Builders normalise it into {min,max} so (u,v) and (v,u) collapse.
type Pair struct {
	U int // first endpoint (row index)
	V int // second endpoint (column index)
}

// normalized returns the pair with U <= V.
func (p Pair) normalized() Pair {
	if p.U > p.V {
		return Pair{U: p.V, V: p.U}
	}

	return p
}
