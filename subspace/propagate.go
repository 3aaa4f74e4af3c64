// SPDX-License-Identifier: MIT

package subspace

import (
	"fmt"

	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/katalvlaran/dfsolve/rational"
	"go.uber.org/zap"
)

// Propagate computes an orthogonal basis of the smallest Q-invariant subspace
// containing every noise vector in v0, and the number of passes it took.
//
// Implementation:
//   - Stage 1: seed the accumulator with v0, orthogonalised in order so that
//     duplicate or dependent noise vectors collapse. The frontier is v0.
//   - Stage 2: while some frontier entry is non-zero, run one pass: for each
//     frontier index i compute w' = Q·wᵢ, orthogonalise it against the whole
//     current accumulator (including vectors appended earlier in the same
//     pass), append it when non-zero and store it back as frontier[i]. The
//     float pipeline snaps w' before the zero test; exact mode never rounds.
//   - Stage 3: stop when the frontier is all zero. The float pipeline then
//     checks the basis exactly (checkBasis) against Q read as fractions.
//
// The pass cap is N+1 unless WithMaxPasses overrides it: a non-final pass
// always appends, and the accumulator holds at most N vectors.
//
// Errors: the Solve preconditions, ErrDegenerateBasis, ErrNotConverged,
// ErrPrecisionLoss (float pipeline only, including an outgrown accumulator,
// an overflowing step or the automatic pass cap), ctx.Err() on cancellation. Propagate does not
// retry; Solve does.
func Propagate(q matrix.Matrix, v0 [][]float64, opts ...Option) (*Basis, int, error) {
	o := gatherOptions(opts)
	if err := validateInput("Propagate", q, v0, o.Tolerance); err != nil {
		return nil, 0, err
	}

	return propagate(q, v0, o)
}

// propagator holds the per-mode pieces of one propagation run.
type propagator struct {
	q      matrix.Matrix
	qr     rational.Matrix // Q read as fractions
	exact  bool
	maxDen int64
	basis  *Basis
}

// step maps w to the part of Q·w orthogonal to the accumulator.
func (p *propagator) step(w rational.Vector) (rational.Vector, error) {
	if p.exact {
		qw, err := rational.MatVec(p.qr, w)
		if err != nil {
			return nil, err
		}

		return OrthogonalizeExact(qw, p.basis.views)
	}
	qw, err := matrix.MatVec(p.q, w.Floats())
	if err != nil {
		return nil, err
	}

	return OrthogonalizeFloat(qw, p.basis.flts, p.maxDen)
}

// seed orthogonalises a raw noise vector against the accumulator.
func (p *propagator) seed(v []float64) (rational.Vector, rational.Vector, error) {
	raw, err := rational.FromFloats(v, p.maxDen)
	if err != nil {
		return nil, nil, err
	}
	var orth rational.Vector
	if p.exact {
		orth, err = OrthogonalizeExact(raw, p.basis.views)
	} else {
		orth, err = OrthogonalizeFloat(v, p.basis.flts, p.maxDen)
	}
	if err != nil {
		return nil, nil, err
	}

	return raw, orth, nil
}

// lost tags a float-pipeline failure as precision loss so Solve can retry.
func (p *propagator) lost(err error) error {
	if p.exact {
		return err
	}

	return fmt.Errorf("%w: %w", ErrPrecisionLoss, err)
}

func propagate(q matrix.Matrix, v0 [][]float64, o Options) (*Basis, int, error) {
	n := q.Rows()
	log := o.Logger
	p := &propagator{q: q, exact: o.Exact, maxDen: o.MaxDenominator, basis: newBasis(n, n)}
	rows, err := denseRows(q)
	if err != nil {
		return nil, 0, fmt.Errorf("Propagate: %w", err)
	}
	if p.qr, err = rational.FromFloatRows(rows, o.MaxDenominator); err != nil {
		return nil, 0, fmt.Errorf("Propagate: %w", err)
	}

	seeds := make([]rational.Vector, len(v0))
	frontier := make([]rational.Vector, len(v0))
	for k, v := range v0 {
		raw, orth, err := p.seed(v)
		if err != nil {
			return nil, 0, fmt.Errorf("Propagate: seed %d: %w", k, err)
		}
		seeds[k], frontier[k] = raw, raw
		if orth.IsZero() {
			log.Debug("noise vector already spanned", zap.Int("index", k))
			continue
		}
		if err = p.basis.append(orth); err != nil {
			return nil, 0, fmt.Errorf("Propagate: seed %d: %w", k, p.lost(err))
		}
	}

	maxPasses := o.MaxPasses
	if maxPasses == autoPasses {
		maxPasses = n + 1
	}

	passes := 0
	for live := countLive(frontier); live > 0; live = countLive(frontier) {
		if passes >= maxPasses {
			err := fmt.Errorf("Propagate: %d live frontier vectors after %d passes: %w",
				live, passes, ErrNotConverged)
			if o.MaxPasses == autoPasses {
				err = p.lost(err)
			}

			return nil, passes, err
		}
		if err := o.Ctx.Err(); err != nil {
			return nil, passes, fmt.Errorf("Propagate: %w", err)
		}
		passes++

		for i, w := range frontier {
			if w.IsZero() {
				continue // Q·0 = 0
			}
			next, err := p.step(w)
			if err != nil {
				return nil, passes, fmt.Errorf("Propagate: pass %d, frontier %d: %w", passes, i, p.lost(err))
			}
			if !next.IsZero() {
				if err = p.basis.append(next); err != nil {
					return nil, passes, fmt.Errorf("Propagate: pass %d: %w", passes, p.lost(err))
				}
			}
			frontier[i] = next
		}

		log.Debug("propagation pass",
			zap.Int("pass", passes),
			zap.Int("live", countLive(frontier)),
			zap.Int("basis", p.basis.Len()),
		)
	}

	if !p.exact {
		if err := checkBasis(p.qr, seeds, p.basis.views); err != nil {
			return nil, passes, fmt.Errorf("Propagate: %w", err)
		}
	}

	return p.basis, passes, nil
}

// countLive returns the number of non-zero frontier entries.
func countLive(frontier []rational.Vector) int {
	live := 0
	for _, w := range frontier {
		if !w.IsZero() {
			live++
		}
	}

	return live
}
