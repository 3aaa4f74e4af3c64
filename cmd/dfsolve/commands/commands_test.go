package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/dfsolve/config"
	"github.com/katalvlaran/dfsolve/subspace"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const starYAML = `
noise: [3, 1]
edges:
  - [[3, 1], [4, 2]]
  - [[4, 2], [5, 1]]
  - [[4, 2], [5, 3]]
`

const chainYAML = `
noise: [3, 1]
edges:
  - [[3, 1], [4, 2]]
  - [[4, 2], [5, 2]]
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), errOut.String(), err
}

func TestSolve_Star(t *testing.T) {
	path := writeFile(t, t.TempDir(), "star.yaml", starYAML)
	out, _, err := execute(t, "solve", path)
	require.NoError(t, err)

	require.Contains(t, out, "Q =\nw | d | d\nd | w | 0\nd | 0 | w\n")
	require.Contains(t, out, "V0 =\n1\n0\n0\n")
	require.Contains(t, out, "There is a decoherence free subspace of dimension 1.")
	require.Contains(t, out, "This is the Decoherence Free Subspace:\n0\n-1/2\n1/2\n")
	require.Contains(t, out, "Decoupled coupling matrix (verified):")
}

func TestSolve_Flags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "star.yaml", starYAML)

	out, errOut, err := execute(t, "solve", path, "--exact", "--no-decouple", "-v")
	require.NoError(t, err)
	require.NotContains(t, out, "Decoupled coupling matrix")
	require.Contains(t, errOut, "propagation pass")
	require.Contains(t, errOut, `"exact": true`)

	out, _, err = execute(t, "solve", writeFile(t, dir, "chain.yaml", chainYAML))
	require.NoError(t, err)
	require.Contains(t, out, "There is no decoherence free subspace.")

	_, _, err = execute(t, "solve", path, "--max-passes", "1")
	require.ErrorIs(t, err, subspace.ErrNotConverged)
	require.Contains(t, errors.FlattenHints(err), "--max-passes")
}

func TestSolve_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "solve", filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NotEmpty(t, errors.GetAllHints(err))

	asym := writeFile(t, dir, "asym.yaml", "q: [[0, 1], [0, 0]]\nv0: [[1, 0]]\n")
	_, _, err = execute(t, "solve", asym)
	require.ErrorIs(t, err, subspace.ErrNotSymmetric)
	require.Contains(t, errors.FlattenHints(err), "transpose")

	short := writeFile(t, dir, "short.yaml", "q: [[0, 1], [1, 0]]\nv0: [[1]]\n")
	_, _, err = execute(t, "solve", short)
	require.ErrorIs(t, err, subspace.ErrDimensionMismatch)

	badCfg := writeFile(t, dir, "bad.toml", "[solver]\nmax_denominator = 0\n")
	_, _, err = execute(t, "solve", asym, "--config", badCfg)
	require.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "solve")
	require.Error(t, err)
}

func TestWithSolveHint(t *testing.T) {
	tests := []struct {
		cause error
		hint  string
	}{
		{subspace.ErrDegenerateBasis, "--exact"},
		{subspace.ErrPrecisionLoss, "--exact"},
		{subspace.ErrNotConverged, "--max-passes"},
		{subspace.ErrNotSymmetric, "transpose"},
		{subspace.ErrZeroNoiseVector, "all-zero"},
	}
	for _, tc := range tests {
		err := withSolveHint(errors.Wrap(tc.cause, "solve net.yaml"))
		require.ErrorIs(t, err, tc.cause)
		require.Contains(t, errors.FlattenHints(err), tc.hint, tc.cause.Error())
	}

	plain := errors.New("other")
	require.Empty(t, errors.GetAllHints(withSolveHint(plain)))
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "dfsolve test\n"))

	out, _, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, "test", info.Version)
}

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func TestWatch_ResolvesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "net.yaml", chainYAML)

	cfg, err := config.Load("")
	require.NoError(t, err)
	out := &syncBuffer{}
	rt := &session{cfg: cfg, log: zap.NewNop(), out: out}

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- rt.watch(ctx, path, ready) }()

	select {
	case <-ready:
	case err = <-done:
		t.Fatalf("watch exited early: %v", err)
	}
	require.Contains(t, out.String(), "There is no decoherence free subspace.")

	require.NoError(t, os.WriteFile(path, []byte(starYAML), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "dimension 1.")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("q: [[0, 1], [0, 0]]\nv0: [[1, 0]]\n"), 0o600))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "hint: couplings are undirected")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
