package commands

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/katalvlaran/dfsolve/network"
	"github.com/katalvlaran/dfsolve/report"
	"github.com/katalvlaran/dfsolve/subspace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Solver flag names.
const (
	flagExact      = "exact"
	flagMaxDen     = "max-den"
	flagMaxPasses  = "max-passes"
	flagNoDecouple = "no-decouple"
	flagStyled     = "styled"
)

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().Bool(flagExact, false, "Use exact rational arithmetic")
	cmd.Flags().Int64(flagMaxDen, 0, "Largest denominator kept when snapping")
	cmd.Flags().Int(flagMaxPasses, 0, "Propagation pass cap (0: N+1)")
	cmd.Flags().Bool(flagNoDecouple, false, "Skip the decoupling transform")
	cmd.Flags().Bool(flagStyled, false, "Render colored tables")
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a network file",
		Long: `Solve reads a network (.yaml, .yml or .toml), prints its coupling matrix
and noise vectors, then the decohering subspace, the decoherence-free
subspace if there is one, and the decoupled coupling matrix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.log.Sync() }()

			return rt.solveFile(cmd.Context(), args[0])
		},
	}
	addSolverFlags(cmd)

	return cmd
}

// solveFile loads, solves and reports one network file.
func (rt *session) solveFile(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	model, err := network.Load(path)
	if err != nil {
		return errors.WithHint(errors.Wrapf(err, "load %s", path),
			"network files are .yaml, .yml or .toml with noise/nodes/edges or q/v0")
	}
	rt.log.Debug("model loaded",
		zap.String("file", path),
		zap.Int("oscillators", model.Q.Rows()),
		zap.Int("noise", len(model.V0)))

	p := report.New(rt.out,
		report.WithStyle(rt.cfg.Output.Styled),
		report.WithMaxDenominator(rt.cfg.Solver.MaxDenominator))
	if err = p.Coupling(model.Q, model.Labels); err != nil {
		return errors.Wrap(err, "render coupling matrix")
	}
	if err = p.NoiseVectors(model.V0); err != nil {
		return errors.Wrap(err, "render noise vectors")
	}

	opts := append(rt.cfg.SolverOptions(rt.log), subspace.WithContext(ctx))
	res, err := subspace.Solve(model.Q, model.V0, opts...)
	if err != nil {
		return withSolveHint(errors.Wrapf(err, "solve %s", path))
	}

	return errors.Wrap(p.Result(res), "render result")
}

// withSolveHint attaches a user hint matching the solver failure.
func withSolveHint(err error) error {
	switch {
	case errors.Is(err, subspace.ErrNotSymmetric):
		return errors.WithHint(err, "couplings are undirected: Q must equal its transpose")
	case errors.Is(err, matrix.ErrRagged), errors.Is(err, subspace.ErrDimensionMismatch):
		return errors.WithHint(err, "q must be square and every v0 vector needs one entry per oscillator")
	case errors.Is(err, subspace.ErrZeroNoiseVector):
		return errors.WithHint(err, "remove all-zero v0 vectors")
	case errors.Is(err, subspace.ErrDegenerateBasis), errors.Is(err, subspace.ErrPrecisionLoss):
		return errors.WithHint(err, "rounding collapsed a basis vector: rerun with --exact")
	case errors.Is(err, subspace.ErrNotConverged):
		return errors.WithHint(err, "raise --max-passes, or set it to 0 for the automatic N+1 cap")
	default:
		return err
	}
}
