// SPDX-License-Identifier: MIT

package rational

import (
	"fmt"
	"math/big"
	"strings"
)

// Vector is a fixed-length vector of exact rationals.
// Every entry is non-nil; constructors guarantee it.
type Vector []*big.Rat

// NewVector returns the zero vector of length n.
func NewVector(n int) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = new(big.Rat)
	}

	return v
}

// Unit returns the standard basis vector e_j of length n.
// Out-of-range j yields the zero vector.
func Unit(n, j int) Vector {
	v := NewVector(n)
	if j >= 0 && j < n {
		v[j].SetInt64(1)
	}

	return v
}

// FromFloats snaps every entry of xs with the given denominator bound.
func FromFloats(xs []float64, maxDen int64) (Vector, error) {
	v := make(Vector, len(xs))
	var err error
	for i, x := range xs {
		if v[i], err = Snap(x, maxDen); err != nil {
			return nil, fmt.Errorf("FromFloats[%d]: %w", i, err)
		}
	}

	return v, nil
}

// Floats converts every entry to the nearest float64.
func (v Vector) Floats() []float64 {
	out := make([]float64, len(v))
	for i, r := range v {
		out[i], _ = r.Float64()
	}

	return out
}

// Clone returns a deep copy.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for i, r := range v {
		out[i] = new(big.Rat).Set(r)
	}

	return out
}

// IsZero reports whether every entry is exactly zero.
func (v Vector) IsZero() bool {
	for _, r := range v {
		if r.Sign() != 0 {
			return false
		}
	}

	return true
}

// Equal reports exact entry-wise equality.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i].Cmp(w[i]) != 0 {
			return false
		}
	}

	return true
}

// Dot returns v·w.
func Dot(v, w Vector) (*big.Rat, error) {
	if len(v) != len(w) {
		return nil, fmt.Errorf("Dot: %d vs %d: %w", len(v), len(w), ErrLengthMismatch)
	}
	sum, term := new(big.Rat), new(big.Rat)
	for i := range v {
		if v[i].Sign() == 0 || w[i].Sign() == 0 {
			continue
		}
		sum.Add(sum, term.Mul(v[i], w[i]))
	}

	return sum, nil
}

// SubScaled sets v ← v − c·w in place.
func (v Vector) SubScaled(c *big.Rat, w Vector) error {
	if len(v) != len(w) {
		return fmt.Errorf("SubScaled: %d vs %d: %w", len(v), len(w), ErrLengthMismatch)
	}
	if c.Sign() == 0 {
		return nil
	}
	term := new(big.Rat)
	for i := range v {
		if w[i].Sign() == 0 {
			continue
		}
		v[i].Sub(v[i], term.Mul(c, w[i]))
	}

	return nil
}

// Project sets v ← v − (v·b / b·b)·b, removing the component of v along b.
// A zero b has no direction to project on and yields ErrZeroVector.
func (v Vector) Project(b Vector) error {
	bb, err := Dot(b, b)
	if err != nil {
		return fmt.Errorf("Project: %w", err)
	}
	if bb.Sign() == 0 {
		return fmt.Errorf("Project: %w", ErrZeroVector)
	}
	vb, err := Dot(v, b)
	if err != nil {
		return fmt.Errorf("Project: %w", err)
	}

	return v.SubScaled(vb.Quo(vb, bb), b)
}

// Snapped returns a copy with every entry bounded by SnapRat.
func (v Vector) Snapped(maxDen int64) Vector {
	out := make(Vector, len(v))
	for i, r := range v {
		out[i] = SnapRat(r, maxDen)
	}

	return out
}

// String renders "[1, -1/2, 0]".
func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, r := range v {
		parts[i] = Format(r)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Format renders r as "n" for integers and "n/d" otherwise.
func Format(r *big.Rat) string {
	return r.RatString()
}
