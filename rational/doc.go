// Package rational provides exact rational vectors and the float-to-fraction
// snapping that keeps iterative linear algebra free of rounding residue.
//
// What & Why:
//
//	Fixed-point iterations that stop on an exact zero cannot run on raw
//	float64: a 1e-16 residue never compares equal to zero. Snap replaces a
//	float with the closest fraction whose denominator is bounded (default
//	1 000 000), so residues collapse to 0 and 0.3333333 becomes 1/3.
//
// Provided:
//
//   - Snap / SnapRat: bounded-denominator best approximation.
//   - Vector: a fixed-length []*big.Rat with Dot, Sub, Scale, IsZero, Equal, String.
//   - Matrix: rows of Vectors with MatVec and FromFloatRows.
//   - RREF: exact Gauss-Jordan elimination returning pivot columns.
//
// Complexity:
//
//	All operations are O(n) or O(n·m) big.Rat operations; inputs here are
//	tens of entries wide.
package rational
