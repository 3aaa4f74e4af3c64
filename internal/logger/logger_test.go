package logger_test

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/dfsolve/internal/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Console(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := logger.New(logger.Options{Level: "debug", Output: &buf})
	require.NoError(t, err)

	l.Debug("propagation pass", zap.Int("pass", 1))
	require.NoError(t, l.Sync())
	require.Contains(t, buf.String(), "DEBUG propagation pass")
	require.Contains(t, buf.String(), `"pass": 1`)
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l, err := logger.New(logger.Options{Output: &buf})
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zapcore.DebugLevel))

	l.Debug("hidden")
	l.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()
	l, err := logger.New(logger.Options{JSON: true, Level: "warn"})
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))
	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_BadLevel(t *testing.T) {
	t.Parallel()
	_, err := logger.New(logger.Options{Level: "loud"})
	require.Error(t, err)
}
