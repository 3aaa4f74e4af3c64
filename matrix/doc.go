// Package matrix offers the dense float64 matrices used to describe an
// oscillator network and to change its coordinate system.
//
// The matrix package provides:
//
//   - Dense, a row-major Matrix with error-returning At/Set (no panics on bad indices).
//   - BuildCoupling, the symmetric 0/1 coupling matrix Q with self-energies on the diagonal.
//   - Kernels: MatVec, Mul, Transpose, Hadamard, Congruence (aᵀ·q·a), FromColumns.
//   - Validators shared by every caller: ValidateSquare, ValidateSymmetric, ValidateFinite.
//
// Matrices here are small (tens of oscillators); every kernel is a plain
// deterministic loop with a *Dense fast path.
package matrix
