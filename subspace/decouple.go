// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/katalvlaran/dfsolve/rational"
)

// Transform is the change of basis that separates noisy from protected modes.
// It is a diagnostic: Verified is the only claim made about it.
type Transform struct {
	// A has the unit-normalised decohering vectors as its first NoisyDim
	// columns, followed by the unit-normalised DFS vectors.
	A *matrix.Dense

	// T is Aᵀ·Q·A.
	T matrix.Matrix

	// Squared is T∘T. Squaring turns the surds of normalisation into
	// rationals, at the cost of losing signs.
	Squared matrix.Matrix

	// NoisyDim is the size of the decohering block.
	NoisyDim int

	// Residual is max |T[i][j]| over the off-diagonal blocks.
	Residual float64

	// Verified reports Residual <= tolerance.
	Verified bool
}

// Decouple builds the Transform for Q in the basis decohering ∪ dfs.
// Both sets are normalised by their Euclidean length before stacking.
//
// Errors: ErrDimensionMismatch when the vectors do not form N columns of
// length N, ErrDegenerateBasis for a zero vector, matrix errors from the
// underlying kernels.
func Decouple(q matrix.Matrix, decohering, dfs []rational.Vector, opts ...Option) (*Transform, error) {
	o := gatherOptions(opts)
	if err := matrix.ValidateSquare(q); err != nil {
		return nil, fmt.Errorf("Decouple: %w: %w", ErrDimensionMismatch, err)
	}
	n := q.Rows()
	if len(decohering)+len(dfs) != n {
		return nil, fmt.Errorf("Decouple: %d+%d columns for N=%d: %w",
			len(decohering), len(dfs), n, ErrDimensionMismatch)
	}

	cols := make([][]float64, 0, n)
	for _, set := range [][]rational.Vector{decohering, dfs} {
		for _, v := range set {
			if len(v) != n {
				return nil, fmt.Errorf("Decouple: column %d has %d entries: %w", len(cols), len(v), ErrDimensionMismatch)
			}
			u, err := normalize(v.Floats())
			if err != nil {
				return nil, fmt.Errorf("Decouple: column %d: %w", len(cols), err)
			}
			cols = append(cols, u)
		}
	}

	a, err := matrix.FromColumns(cols)
	if err != nil {
		return nil, fmt.Errorf("Decouple: %w", err)
	}
	t, err := matrix.Congruence(q, a)
	if err != nil {
		return nil, fmt.Errorf("Decouple: %w", err)
	}
	sq, err := matrix.Hadamard(t, t)
	if err != nil {
		return nil, fmt.Errorf("Decouple: %w", err)
	}

	k := len(decohering)
	var residual, x float64
	var i, j int
	for i = 0; i < k; i++ {
		for j = k; j < n; j++ {
			if x, err = t.At(i, j); err != nil {
				return nil, fmt.Errorf("Decouple: %w", err)
			}
			residual = math.Max(residual, math.Abs(x))
			if x, err = t.At(j, i); err != nil {
				return nil, fmt.Errorf("Decouple: %w", err)
			}
			residual = math.Max(residual, math.Abs(x))
		}
	}

	return &Transform{
		A:        a,
		T:        t,
		Squared:  sq,
		NoisyDim: k,
		Residual: residual,
		Verified: residual <= o.Tolerance,
	}, nil
}

// normalize returns v / ‖v‖.
func normalize(v []float64) ([]float64, error) {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	if ss == 0 {
		return nil, ErrDegenerateBasis
	}
	norm := math.Sqrt(ss)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}

	return out, nil
}
