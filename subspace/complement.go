// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"

	"github.com/katalvlaran/dfsolve/rational"
)

// Complement returns an orthogonal basis of the orthogonal complement of
// span(decohering) in ℝⁿ. decohering must be non-zero and pairwise orthogonal
// in exact arithmetic, as produced by Propagate; otherwise ErrNotOrthogonal.
//
// Implementation:
//   - Stage 1: exact RREF of the decohering rows; the non-pivot columns are free.
//   - Stage 2: for each free column j ascending, take e_j and orthogonalise it
//     exactly against decohering followed by the DFS vectors accepted so far.
//     No snapping is applied.
//
// span(decohering) and the free unit vectors together span ℝⁿ with no
// redundancy, so an exact residual of e_j is never zero; a vanished candidate
// is reported as ErrDegenerateBasis. The returned basis is deterministic but
// not canonical.
func Complement(decohering []rational.Vector, n int) ([]rational.Vector, error) {
	if n < 1 {
		return nil, fmt.Errorf("Complement: n=%d: %w", n, ErrDimensionMismatch)
	}
	if len(decohering) > n {
		return nil, fmt.Errorf("Complement: %d vectors in ℝ^%d: %w", len(decohering), n, ErrNotConverged)
	}
	if len(decohering) == n {
		return nil, nil
	}

	_, pivots, err := rational.RREF(decohering, n)
	if err != nil {
		return nil, fmt.Errorf("Complement: %w: %w", ErrDimensionMismatch, err)
	}
	if len(pivots) != len(decohering) {
		return nil, fmt.Errorf("Complement: rank %d of %d vectors: %w", len(pivots), len(decohering), ErrDegenerateBasis)
	}
	for i := range decohering {
		for j := i + 1; j < len(decohering); j++ {
			d, err := rational.Dot(decohering[i], decohering[j])
			if err != nil {
				return nil, fmt.Errorf("Complement: %w", err)
			}
			if d.Sign() != 0 {
				return nil, fmt.Errorf("Complement: decohering[%d]·decohering[%d] = %s: %w",
					i, j, d.RatString(), ErrNotOrthogonal)
			}
		}
	}
	free := rational.FreeColumns(pivots, n)

	against := make([]rational.Vector, len(decohering), n)
	copy(against, decohering)
	dfs := make([]rational.Vector, 0, len(free))
	for _, j := range free {
		cand, err := OrthogonalizeExact(rational.Unit(n, j), against)
		if err != nil {
			return nil, fmt.Errorf("Complement: e_%d: %w", j, err)
		}
		if cand.IsZero() {
			return nil, fmt.Errorf("Complement: e_%d vanished: %w", j, ErrDegenerateBasis)
		}
		dfs = append(dfs, cand)
		against = append(against, cand)
	}

	return dfs, nil
}
