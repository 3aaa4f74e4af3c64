// SPDX-License-Identifier: MIT

package rational

import "errors"

// Sentinel errors for exact rational arithmetic.
var (
	// ErrNonFinite indicates NaN or ±Inf was offered for snapping.
	ErrNonFinite = errors.New("rational: NaN or Inf cannot be snapped")

	// ErrBadDenominator indicates a maximum denominator below 1.
	ErrBadDenominator = errors.New("rational: max denominator must be >= 1")

	// ErrLengthMismatch indicates vectors (or a matrix row and a vector) of different lengths.
	ErrLengthMismatch = errors.New("rational: length mismatch")

	// ErrZeroVector indicates a zero vector where a non-zero one is required
	// (projection denominator, normalisation).
	ErrZeroVector = errors.New("rational: zero vector")
)
