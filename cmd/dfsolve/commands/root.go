// Package commands implements the dfsolve command tree.
package commands

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/katalvlaran/dfsolve/config"
	"github.com/katalvlaran/dfsolve/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Persistent flag names.
const (
	flagConfig  = "config"
	flagJSONLog = "json-log"
	flagVerbose = "verbose"
)

// NewRootCmd builds the dfsolve command tree. version is reported by
// "dfsolve version".
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "dfsolve",
		Short: "Find decoherence-free subspaces of coupled oscillator networks",
		Long: `dfsolve reads a network of coupled oscillators with one noise source and
reports whether a decoherence-free subspace exists.

Available commands:
  solve   - Solve a network file once
  watch   - Re-solve a network file every time it changes
  version - Show version information

Examples:
  dfsolve solve star.yaml             # plain report
  dfsolve solve star.toml --styled    # colored tables
  dfsolve solve ring.yaml --exact -v  # exact arithmetic, debug log
  dfsolve watch star.yaml             # re-solve on save`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String(flagConfig, "", "Config file (TOML or YAML)")
	root.PersistentFlags().Bool(flagJSONLog, false, "Log as JSON")
	root.PersistentFlags().CountP(flagVerbose, "v", "Increase log verbosity (-v for debug)")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd(version))

	return root
}

// session is the per-invocation state shared by solve and watch.
type session struct {
	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

// setup resolves configuration (defaults < file < env < flags) and builds
// the logger, tagged with a fresh run id.
func setup(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	v, err := config.New(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "load config"),
			"pass a readable .toml or .yaml file to --config")
	}
	if err = bindFlags(cmd, v); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "invalid configuration"),
			"max_denominator must be >= 1, max_passes and tolerance >= 0")
	}

	l, err := logger.New(logger.Options{
		JSON:   cfg.Log.JSON,
		Level:  cfg.Log.Level,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	return &session{
		cfg: cfg,
		log: l.With(zap.String("run", uuid.NewString())),
		out: cmd.OutOrStdout(),
	}, nil
}

// bindFlags lays explicitly set flags over the configuration.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	binds := map[string]string{
		"solver.exact":           flagExact,
		"solver.max_denominator": flagMaxDen,
		"solver.max_passes":      flagMaxPasses,
		"output.styled":          flagStyled,
		"log.json":               flagJSONLog,
	}
	for key, name := range binds {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	if noDecouple, _ := cmd.Flags().GetBool(flagNoDecouple); noDecouple {
		v.Set("solver.decouple", false)
	}
	if verbose, _ := cmd.Flags().GetCount(flagVerbose); verbose > 0 {
		v.Set("log.level", "debug")
	}

	return nil
}
