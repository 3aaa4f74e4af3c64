// SPDX-License-Identifier: MIT
// Package subspace finds the decoherence-free subspace of a coupled
// oscillator network.
//
// Given a symmetric coupling matrix Q (N×N) and a set of noise-coupling
// vectors V₀, the solver:
//
//  1. Propagate: grows the smallest Q-invariant subspace containing V₀ by
//     repeatedly applying Q to a frontier and keeping the part orthogonal to
//     what was already found (the decohering subspace).
//  2. Complement: extracts an orthogonal basis of the remainder of ℝᴺ, the
//     decoherence-free subspace (DFS).
//  3. Decouple: expresses Q in the combined basis so the noisy and protected
//     blocks can be inspected. This step is diagnostic.
//
// Every vector the solver hands out is a rational.Vector. By default
// intermediate values are computed in float64 and snapped to the simplest
// fraction with a bounded denominator after each orthogonalisation, so exact
// zeros are recognised and the loop terminates. The snapped basis is then
// checked in exact arithmetic; when snapping has bent it (large networks
// produce denominators above the bound) Solve reruns in big.Rat.
// WithExactArithmetic goes straight to big.Rat and never rounds after Q and
// V₀ are read. Complement is always exact.
//
// Solve is a pure function: it copies its inputs, keeps no global state and
// may be called concurrently.
//
// Errors are sentinels prefixed "subspace: ", matched with errors.Is:
//
//	ErrDimensionMismatch, ErrNotSymmetric, ErrZeroNoiseVector (preconditions)
//	ErrDegenerateBasis (broken accumulator invariant, fatal)
//	ErrNotOrthogonal (Complement input not orthogonal)
//	ErrNotConverged (pass cap exceeded)
//	ErrPrecisionLoss (float basis failed the exact check; Solve retries)
//
// Complexity: O(N) passes, each O(k·N²) for k noise vectors, plus O(N³) for
// the complement and the transform.
package subspace
