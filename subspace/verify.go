// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"

	"github.com/katalvlaran/dfsolve/rational"
)

// checkBasis verifies in exact arithmetic that basis is an orthogonal basis of
// the smallest qr-invariant subspace containing seeds. Any failure wraps
// ErrPrecisionLoss.
//
// Implementation:
//   - Stage 1: every pair of basis vectors has a zero dot product.
//   - Stage 2: every seed and every qr·b has a zero residual against the basis.
//   - Stage 3: the basis size equals the rank of {qrʲ·s : s in seeds, 0 <= j < n}.
//
// Stages 1-2 prove the span is invariant and contains the seeds; stage 3 rules
// out a span larger than the Krylov space.
//
// Complexity: O(k·n³) big.Rat operations for k seeds.
func checkBasis(qr rational.Matrix, seeds, basis []rational.Vector) error {
	var i, j int
	for i = range basis {
		for j = i + 1; j < len(basis); j++ {
			d, err := rational.Dot(basis[i], basis[j])
			if err != nil {
				return fmt.Errorf("checkBasis: %w", err)
			}
			if d.Sign() != 0 {
				return fmt.Errorf("checkBasis: basis[%d]·basis[%d] = %s: %w", i, j, d.RatString(), ErrPrecisionLoss)
			}
		}
	}

	for k, s := range seeds {
		r, err := OrthogonalizeExact(s, basis)
		if err != nil {
			return fmt.Errorf("checkBasis: %w", err)
		}
		if !r.IsZero() {
			return fmt.Errorf("checkBasis: noise vector %d outside the span: %w", k, ErrPrecisionLoss)
		}
	}

	for i, b := range basis {
		qb, err := rational.MatVec(qr, b)
		if err != nil {
			return fmt.Errorf("checkBasis: %w", err)
		}
		r, err := OrthogonalizeExact(qb, basis)
		if err != nil {
			return fmt.Errorf("checkBasis: %w", err)
		}
		if !r.IsZero() {
			return fmt.Errorf("checkBasis: Q·basis[%d] leaves the span: %w", i, ErrPrecisionLoss)
		}
	}

	rank, err := krylovRank(qr, seeds)
	if err != nil {
		return fmt.Errorf("checkBasis: %w", err)
	}
	if rank != len(basis) {
		return fmt.Errorf("checkBasis: %d basis vectors for a %d-dimensional subspace: %w",
			len(basis), rank, ErrPrecisionLoss)
	}

	return nil
}

// krylovRank returns the dimension of span{qrʲ·s : s in seeds, 0 <= j < n}
// by exact row reduction.
func krylovRank(qr rational.Matrix, seeds []rational.Vector) (int, error) {
	n := len(qr)
	if len(seeds) == 0 {
		return 0, nil
	}
	rows := make([]rational.Vector, 0, len(seeds)*n)
	for _, s := range seeds {
		v := s
		for j := 0; j < n; j++ {
			rows = append(rows, v)
			if v.IsZero() {
				break // every further power is zero too
			}
			next, err := rational.MatVec(qr, v)
			if err != nil {
				return 0, err
			}
			v = next
		}
	}
	_, pivots, err := rational.RREF(rows, n)
	if err != nil {
		return 0, err
	}

	return len(pivots), nil
}
