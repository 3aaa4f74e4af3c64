// Package config loads solver and CLI settings from an optional file and
// DFSOLVE_* environment variables.
//
// Precedence (lowest to highest): defaults < config file < environment.
// A .env file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/dfsolve/rational"
	"github.com/katalvlaran/dfsolve/subspace"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment override, e.g. DFSOLVE_SOLVER_EXACT.
const EnvPrefix = "DFSOLVE"

// ErrInvalid indicates a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete settings tree.
type Config struct {
	Solver SolverConfig `mapstructure:"solver"`
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// SolverConfig mirrors the subspace options.
type SolverConfig struct {
	MaxDenominator int64   `mapstructure:"max_denominator"`
	MaxPasses      int     `mapstructure:"max_passes"` // 0: N+1
	Exact          bool    `mapstructure:"exact"`
	Decouple       bool    `mapstructure:"decouple"`
	Tolerance      float64 `mapstructure:"tolerance"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Styled bool `mapstructure:"styled"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("solver.max_denominator", rational.DefaultMaxDenominator)
	v.SetDefault("solver.max_passes", 0)
	v.SetDefault("solver.exact", false)
	v.SetDefault("solver.decouple", true)
	v.SetDefault("solver.tolerance", subspace.DefaultTolerance)
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("output.styled", false)
}

// New returns a viper instance with defaults and environment binding, and
// path read in when non-empty.
func New(path string) (*viper.Viper, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return v, nil
}

// Load reads the configuration, optionally from path.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}

	return FromViper(v)
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks every value against its domain.
func (c *Config) Validate() error {
	if c.Solver.MaxDenominator < 1 {
		return fmt.Errorf("solver.max_denominator=%d: must be >= 1: %w", c.Solver.MaxDenominator, ErrInvalid)
	}
	if c.Solver.MaxPasses < 0 {
		return fmt.Errorf("solver.max_passes=%d: must be >= 0: %w", c.Solver.MaxPasses, ErrInvalid)
	}
	if c.Solver.Tolerance < 0 {
		return fmt.Errorf("solver.tolerance=%g: must be >= 0: %w", c.Solver.Tolerance, ErrInvalid)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level=%q: %w", c.Log.Level, ErrInvalid)
	}

	return nil
}

// SolverOptions converts the solver settings into subspace options.
// Call Validate first; out-of-range values panic in the option constructors.
func (c *Config) SolverOptions(logger *zap.Logger) []subspace.Option {
	opts := []subspace.Option{
		subspace.WithMaxDenominator(c.Solver.MaxDenominator),
		subspace.WithMaxPasses(c.Solver.MaxPasses),
		subspace.WithDecoupling(c.Solver.Decouple),
		subspace.WithTolerance(c.Solver.Tolerance),
		subspace.WithLogger(logger),
	}
	if c.Solver.Exact {
		opts = append(opts, subspace.WithExactArithmetic())
	}

	return opts
}
