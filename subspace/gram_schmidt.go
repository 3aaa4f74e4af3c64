// SPDX-License-Identifier: MIT

package subspace

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dfsolve/rational"
)

// Orthogonalize removes from v its projection onto every basis vector, in
// order (classical Gram-Schmidt: v ← v − (v·b / b·b)·b), then snaps every
// coordinate to the simplest fraction with denominator <= maxDen.
// v is not modified.
//
// Errors:
//   - ErrDegenerateBasis when a basis vector is zero.
//   - rational.ErrLengthMismatch when lengths differ.
//   - rational.ErrBadDenominator when maxDen < 1.
func Orthogonalize(v rational.Vector, basis []rational.Vector, maxDen int64) (rational.Vector, error) {
	if maxDen < 1 {
		return nil, fmt.Errorf("Orthogonalize: %w", rational.ErrBadDenominator)
	}
	w, err := OrthogonalizeExact(v, basis)
	if err != nil {
		return nil, err
	}

	return w.Snapped(maxDen), nil
}

// OrthogonalizeExact is Orthogonalize without snapping: the result is the
// exact rational residual, orthogonal to every basis vector when the basis is
// itself pairwise orthogonal. v is not modified.
func OrthogonalizeExact(v rational.Vector, basis []rational.Vector) (rational.Vector, error) {
	w := v.Clone()
	for i, b := range basis {
		if err := w.Project(b); err != nil {
			if errors.Is(err, rational.ErrZeroVector) {
				return nil, fmt.Errorf("Orthogonalize: basis[%d]: %w", i, ErrDegenerateBasis)
			}

			return nil, fmt.Errorf("Orthogonalize: basis[%d]: %w", i, err)
		}
	}

	return w, nil
}

// OrthogonalizeFloat is the float64 rendition of Orthogonalize: projections
// are computed in floating point against the float mirrors of the basis and
// the result is snapped back to rationals. basisF[i] must mirror the basis
// vector i.
//
// Errors:
//   - ErrDegenerateBasis when a basis vector is zero.
//   - ErrDimensionMismatch when lengths differ.
//   - rational.ErrNonFinite when a coordinate overflowed.
func OrthogonalizeFloat(v []float64, basisF [][]float64, maxDen int64) (rational.Vector, error) {
	w := make([]float64, len(v))
	copy(w, v)

	var vb, bb float64
	var i, j int
	for i = 0; i < len(basisF); i++ {
		b := basisF[i]
		if len(b) != len(w) {
			return nil, fmt.Errorf("OrthogonalizeFloat: basis[%d]: %w", i, ErrDimensionMismatch)
		}
		vb, bb = 0, 0
		for j = 0; j < len(w); j++ {
			vb += w[j] * b[j]
			bb += b[j] * b[j]
		}
		if bb == 0 {
			return nil, fmt.Errorf("OrthogonalizeFloat: basis[%d]: %w", i, ErrDegenerateBasis)
		}
		if vb == 0 {
			continue
		}
		scale := vb / bb
		for j = 0; j < len(w); j++ {
			w[j] -= scale * b[j]
		}
	}

	out, err := rational.FromFloats(w, maxDen)
	if err != nil {
		return nil, fmt.Errorf("OrthogonalizeFloat: %w", err)
	}

	return out, nil
}
