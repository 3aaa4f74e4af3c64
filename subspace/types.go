// SPDX-License-Identifier: MIT

package subspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/dfsolve/rational"
	"go.uber.org/zap"
)

var (
	// ErrDimensionMismatch is returned when Q is not square, empty, or a noise
	// vector length differs from Q's dimension. The matrix-level cause is
	// wrapped alongside it.
	ErrDimensionMismatch = errors.New("subspace: dimension mismatch")

	// ErrNotSymmetric indicates a coupling matrix that is not symmetric within tolerance.
	ErrNotSymmetric = errors.New("subspace: coupling matrix is not symmetric")

	// ErrZeroNoiseVector indicates a noise-coupling vector with no non-zero entry.
	ErrZeroNoiseVector = errors.New("subspace: noise vector is zero")

	// ErrDegenerateBasis indicates a zero vector inside the accumulated basis,
	// or a complement candidate that vanished. Both mean the accumulator
	// invariant was broken; they are never skipped.
	ErrDegenerateBasis = errors.New("subspace: degenerate basis vector")

	// ErrNotOrthogonal indicates Complement input that is not pairwise
	// orthogonal in exact arithmetic.
	ErrNotOrthogonal = errors.New("subspace: basis vectors are not orthogonal")

	// ErrNotConverged indicates that the frontier did not reach all-zero
	// within the pass cap, or the accumulator outgrew the space dimension.
	ErrNotConverged = errors.New("subspace: propagation failed to converge")

	// ErrPrecisionLoss indicates that snapping in the float pipeline produced a
	// basis that fails the exact check: not pairwise orthogonal, not closed
	// under Q, missing a noise vector or of the wrong dimension. Solve recovers
	// from it by rerunning in exact arithmetic.
	ErrPrecisionLoss = errors.New("subspace: float pipeline lost precision")
)

// Defaults applied by DefaultOptions.
const (
	// DefaultTolerance bounds the symmetry check on Q and the block residual
	// below which a decoupling transform counts as verified.
	DefaultTolerance = 1e-9

	// autoPasses selects the N+1 pass cap.
	autoPasses = 0
)

// Option configures a solver call.
type Option func(*Options)

// Options holds the resolved solver configuration.
type Options struct {
	// Ctx is checked between propagation passes; defaults to context.Background().
	Ctx context.Context

	// Logger receives per-pass Debug records and a final Info summary.
	// Defaults to zap.NewNop().
	Logger *zap.Logger

	// MaxDenominator bounds every snapped coordinate in the float pipeline and
	// the fractions Q and V₀ are read as (default 1 000 000).
	MaxDenominator int64

	// MaxPasses caps propagation passes. 0 means N+1, the bound for exact input.
	MaxPasses int

	// Exact runs Q·w and Gram-Schmidt in big.Rat instead of float64, with no
	// snapping after the inputs are read.
	Exact bool

	// Decouple enables the best-effort change of basis when a DFS exists.
	Decouple bool

	// Tolerance is used by the symmetry check and the decoupling residual.
	Tolerance float64
}

// DefaultOptions returns the reference configuration: float64 intermediates
// snapped after every step, N+1 pass cap, decoupling on.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		Logger:         zap.NewNop(),
		MaxDenominator: rational.DefaultMaxDenominator,
		MaxPasses:      autoPasses,
		Decouple:       true,
		Tolerance:      DefaultTolerance,
	}
}

// WithContext sets the cancellation context. Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("subspace: WithContext(nil)")
	}

	return func(o *Options) { o.Ctx = ctx }
}

// WithLogger routes solver diagnostics to l. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMaxDenominator sets the snapping bound. Panics if d < 1.
func WithMaxDenominator(d int64) Option {
	if d < 1 {
		panic(fmt.Sprintf("subspace: WithMaxDenominator(%d): must be >= 1", d))
	}

	return func(o *Options) { o.MaxDenominator = d }
}

// WithMaxPasses caps propagation passes; 0 restores the automatic N+1 cap.
// Panics if n < 0.
func WithMaxPasses(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("subspace: WithMaxPasses(%d): must be >= 0", n))
	}

	return func(o *Options) { o.MaxPasses = n }
}

// WithExactArithmetic computes Q·w and projections exactly in big.Rat.
// Q and V₀ are snapped once on entry; intermediate vectors are never rounded.
func WithExactArithmetic() Option {
	return func(o *Options) { o.Exact = true }
}

// WithDecoupling toggles the decoupling transform.
func WithDecoupling(enabled bool) Option {
	return func(o *Options) { o.Decouple = enabled }
}

// WithTolerance sets the symmetry/residual tolerance. Panics if tol < 0.
func WithTolerance(tol float64) Option {
	if tol < 0 {
		panic(fmt.Sprintf("subspace: WithTolerance(%g): must be >= 0", tol))
	}

	return func(o *Options) { o.Tolerance = tol }
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Result is the outcome of Solve.
type Result struct {
	// N is the number of oscillators (dimension of Q).
	N int

	// DFSDim is N minus the decohering dimension.
	DFSDim int

	// DFS holds exactly DFSDim pairwise orthogonal vectors, nil when DFSDim == 0.
	DFS []rational.Vector

	// Decohering is the orthogonal basis of the smallest Q-invariant subspace containing V₀.
	Decohering []rational.Vector

	// Passes is the number of propagation passes performed.
	Passes int

	// Exact reports whether the bases came from exact arithmetic, either on
	// request or because the float pipeline lost precision.
	Exact bool

	// Transform is the diagnostic change of basis; nil when DFSDim == 0 or decoupling is off.
	Transform *Transform
}

// HasDFS reports whether a non-trivial decoherence-free subspace exists.
func (r *Result) HasDFS() bool { return r != nil && r.DFSDim > 0 }

// Dim returns the dimension of the decohering subspace.
func (r *Result) Dim() int {
	if r == nil {
		return 0
	}

	return len(r.Decohering)
}
