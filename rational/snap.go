// SPDX-License-Identifier: MIT

package rational

import (
	"fmt"
	"math"
	"math/big"
)

// DefaultMaxDenominator bounds the denominator of snapped values.
// 1e-16 residues collapse to 0 and 0.3333333 becomes 1/3 under this bound.
const DefaultMaxDenominator int64 = 1_000_000

// Snap returns the simplest rational with denominator <= maxDen that is
// closest to x.
//
// Implementation:
//   - Stage 1: reject NaN/±Inf (ErrNonFinite) and maxDen < 1 (ErrBadDenominator).
//   - Stage 2: take the exact binary value of x as a big.Rat.
//   - Stage 3: bound its denominator with SnapRat.
//
// Complexity:
//   - O(log maxDen) continued-fraction steps on big integers.
func Snap(x float64, maxDen int64) (*big.Rat, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("Snap(%v): %w", x, ErrNonFinite)
	}
	if maxDen < 1 {
		return nil, fmt.Errorf("Snap: max denominator %d: %w", maxDen, ErrBadDenominator)
	}
	exact := new(big.Rat).SetFloat64(x)

	return SnapRat(exact, maxDen), nil
}

// SnapRat returns the closest fraction to r whose denominator does not exceed
// maxDen, walking the continued-fraction convergents of r and comparing the
// last convergent with the best semiconvergent. r is not modified.
// maxDen must be >= 1; callers validate it.
func SnapRat(r *big.Rat, maxDen int64) *big.Rat {
	limit := big.NewInt(maxDen)
	if r.Denom().Cmp(limit) <= 0 {
		return new(big.Rat).Set(r)
	}

	// p0/q0 and p1/q1 are consecutive convergents.
	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(r.Num())
	d := new(big.Int).Set(r.Denom())

	a, q2, t := new(big.Int), new(big.Int), new(big.Int)
	for {
		a.Div(n, d) // d > 0, so Euclidean division is floor division
		q2.Mul(a, q1)
		q2.Add(q2, q0)
		if q2.Cmp(limit) > 0 {
			break
		}
		// p0, q0, p1, q1 = p1, q1, p0+a*p1, q2
		t.Mul(a, p1)
		t.Add(t, p0)
		p0.Set(p1)
		p1.Set(t)
		q0.Set(q1)
		q1.Set(q2)
		// n, d = d, n-a*d
		t.Mul(a, d)
		t.Sub(n, t)
		n.Set(d)
		d.Set(t)
	}

	// k = (maxDen - q0) / q1
	k := new(big.Int).Sub(limit, q0)
	k.Div(k, q1)

	semi := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	conv := new(big.Rat).SetFrac(p1, q1)

	dSemi := new(big.Rat).Sub(semi, r)
	dSemi.Abs(dSemi)
	dConv := new(big.Rat).Sub(conv, r)
	dConv.Abs(dConv)
	if dConv.Cmp(dSemi) <= 0 {
		return conv
	}

	return semi
}
