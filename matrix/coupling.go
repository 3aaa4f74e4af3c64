// SPDX-License-Identifier: MIT
// Package matrix - coupling-matrix builder.
//
// Deliverables:
//  1. Undirected mirroring: a coupling (u,v) writes 1 at [u][v] and [v][u].
//  2. Duplicate couplings collapse (first write wins, value stays 1).
//  3. Self-couplings are rejected; self-energy goes on the diagonal.
//  4. Deterministic iteration over the pair slice (no map-order reliance).

package matrix

import "fmt"

const opBuildCoupling = "BuildCoupling"

// couplingStrength is the off-diagonal value marking a physical coupling.
const couplingStrength = 1.0

// BuildCoupling builds the symmetric n×n coupling matrix Q.
//
// Implementation:
//   - Stage 1: validate n>0 and len(energies) ∈ {0, n}.
//   - Stage 2: allocate Dense(n,n) and write self-energies on the diagonal.
//   - Stage 3: walk pairs in order, validate indices, mirror 1 into both cells.
//
// Inputs:
//   - n: number of oscillators.
//   - pairs: undirected couplings between oscillator indices.
//   - energies: per-oscillator self-energy; nil means all zero.
//
// Errors:
//   - ErrInvalidDimensions (n<=0), ErrDimensionMismatch (energies length),
//     ErrOutOfRange (pair index), ErrLoopNotAllowed (u==v), ErrNaNInf (energy).
//
// Complexity:
//   - Time O(n² + P), Space O(n²).
func BuildCoupling(n int, pairs []Pair, energies []float64) (*Dense, error) {
	if n <= 0 {
		return nil, matrixErrorf(opBuildCoupling, ErrInvalidDimensions)
	}
	if energies != nil {
		if err := ValidateVecLen(energies, n); err != nil {
			return nil, matrixErrorf(opBuildCoupling, err)
		}
	}
	q, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opBuildCoupling, err)
	}

	var i int
	for i = 0; i < len(energies); i++ {
		if err = q.Set(i, i, energies[i]); err != nil {
			return nil, matrixErrorf(opBuildCoupling, err)
		}
	}

	seen := make(map[Pair]struct{}, len(pairs))
	var p Pair
	for i = 0; i < len(pairs); i++ {
		p = pairs[i].normalized()
		if p.U < 0 || p.V >= n {
			return nil, matrixErrorf(opBuildCoupling, fmt.Errorf("pair %d (%d,%d): %w", i, pairs[i].U, pairs[i].V, ErrOutOfRange))
		}
		if p.U == p.V {
			return nil, matrixErrorf(opBuildCoupling, fmt.Errorf("pair %d (%d,%d): %w", i, p.U, p.V, ErrLoopNotAllowed))
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		q.data[p.U*n+p.V] = couplingStrength
		q.data[p.V*n+p.U] = couplingStrength
	}

	return q, nil
}
