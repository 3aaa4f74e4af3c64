// SPDX-License-Identifier: MIT

package subspace

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dfsolve/matrix"
	"go.uber.org/zap"
)

// Solve determines whether the network described by the coupling matrix q and
// the noise-coupling vectors v0 has a decoherence-free subspace.
//
// Contract:
//   - q is N×N with N >= 1, finite and symmetric within the tolerance.
//   - every vector in v0 has length N, is finite and has a non-zero entry.
//   - v0 may be empty; then the whole space is decoherence-free.
//
// The float pipeline is tried first unless exact arithmetic is requested. When
// its basis fails the exact check (ErrPrecisionLoss), Solve logs a warning and
// reruns propagation in exact arithmetic; Result.Exact records which ran.
// The complement is always computed exactly.
//
// The transform is computed only when a DFS exists and decoupling is enabled.
// Inputs are not modified.
//
// Example:
//
//	q, _ := matrix.FromRows([][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
//	res, err := subspace.Solve(q, [][]float64{{1, 0, 0}})
//	// res.DFSDim == 1, res.DFS[0] spans [0, -1, 1].
func Solve(q matrix.Matrix, v0 [][]float64, opts ...Option) (*Result, error) {
	o := gatherOptions(opts)
	if err := validateInput("Solve", q, v0, o.Tolerance); err != nil {
		return nil, err
	}
	n := q.Rows()

	basis, passes, err := propagate(q, v0, o)
	if err != nil && !o.Exact && errors.Is(err, ErrPrecisionLoss) {
		o.Logger.Warn("float propagation lost precision, retrying in exact arithmetic",
			zap.Int("passes", passes), zap.Error(err))
		o.Exact = true
		basis, passes, err = propagate(q, v0, o)
	}
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	decohering := basis.Vectors()

	res := &Result{
		N:          n,
		DFSDim:     n - len(decohering),
		Decohering: decohering,
		Passes:     passes,
		Exact:      o.Exact,
	}
	if res.DFSDim > 0 {
		if res.DFS, err = Complement(decohering, n); err != nil {
			return nil, fmt.Errorf("Solve: %w", err)
		}
		if o.Decouple {
			if res.Transform, err = Decouple(q, decohering, res.DFS, WithTolerance(o.Tolerance)); err != nil {
				return nil, fmt.Errorf("Solve: %w", err)
			}
		}
	}

	fields := []zap.Field{
		zap.Int("n", n),
		zap.Int("noise", len(v0)),
		zap.Int("decohering", len(decohering)),
		zap.Int("dfs", res.DFSDim),
		zap.Int("passes", passes),
		zap.Bool("exact", o.Exact),
	}
	if res.Transform != nil {
		fields = append(fields, zap.Float64("residual", res.Transform.Residual), zap.Bool("verified", res.Transform.Verified))
	}
	o.Logger.Info("subspace solved", fields...)

	return res, nil
}
