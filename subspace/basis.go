// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/dfsolve/rational"
)

// Basis is the accumulator of the propagation step: an arena of capacity
// vectors of fixed dimension, filled front to back. Vectors handed out by
// At/Vectors point into the arena and must be treated as read-only.
//
// Invariant: every stored vector is non-zero and orthogonal to all earlier ones.
type Basis struct {
	dim   int
	slab  []big.Rat         // capacity*dim entries, row k at [k*dim, (k+1)*dim)
	views []rational.Vector // index list over slab
	flts  [][]float64       // float64 mirror for the float pipeline
}

// newBasis allocates an arena for up to capacity vectors of length dim.
func newBasis(dim, capacity int) *Basis {
	return &Basis{
		dim:   dim,
		slab:  make([]big.Rat, dim*capacity),
		views: make([]rational.Vector, 0, capacity),
		flts:  make([][]float64, 0, capacity),
	}
}

// Dim returns the length of each vector.
func (b *Basis) Dim() int { return b.dim }

// Len returns the number of stored vectors.
func (b *Basis) Len() int { return len(b.views) }

// At returns the i-th stored vector.
func (b *Basis) At(i int) rational.Vector { return b.views[i] }

// Vectors returns a deep copy of the stored vectors, in accumulation order.
func (b *Basis) Vectors() []rational.Vector {
	out := make([]rational.Vector, len(b.views))
	for i, v := range b.views {
		out[i] = v.Clone()
	}

	return out
}

// append copies v into the next arena row.
// A full arena means more than dim independent vectors were produced, which
// only happens when snapping let a residue through: ErrNotConverged.
func (b *Basis) append(v rational.Vector) error {
	if len(v) != b.dim {
		return fmt.Errorf("Basis.append: got %d entries, want %d: %w", len(v), b.dim, ErrDimensionMismatch)
	}
	k := len(b.views)
	if k == cap(b.views) {
		return fmt.Errorf("Basis.append: arena full at %d vectors: %w", k, ErrNotConverged)
	}
	row := make(rational.Vector, b.dim)
	for i := 0; i < b.dim; i++ {
		cell := &b.slab[k*b.dim+i]
		cell.Set(v[i])
		row[i] = cell
	}
	b.views = append(b.views, row)
	b.flts = append(b.flts, row.Floats())

	return nil
}
