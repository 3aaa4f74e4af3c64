// Package logger builds the zap logger shared by the CLI and the solver.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the encoding and minimum level.
type Options struct {
	// JSON switches to the production JSON encoder for machine consumption.
	JSON bool

	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Output receives console records; nil means stderr. Ignored for JSON.
	Output io.Writer
}

// New returns a logger configured by opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("logger: level %q: %w", opts.Level, err)
		}
	}

	if opts.JSON {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)

		return config.Build()
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return zap.New(zapcore.NewCore(newConsoleEncoder(), zapcore.AddSync(out), level)), nil
}

// newConsoleEncoder is a calm human-readable encoder: time of day, level,
// message, then fields.
func newConsoleEncoder() zapcore.Encoder {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	config.CallerKey = zapcore.OmitKey
	config.ConsoleSeparator = " "

	return zapcore.NewConsoleEncoder(config)
}
