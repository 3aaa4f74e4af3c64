package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// debouncePeriod coalesces the burst of events an editor save produces.
const debouncePeriod = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-solve a network file whenever it changes",
		Long: `Watch solves FILE once, then again after every write until interrupted.
Solve errors are reported and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = rt.log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return rt.watch(ctx, args[0], nil)
		},
	}
	addSolverFlags(cmd)

	return cmd
}

// watch re-solves path on every write until ctx is done. The directory is
// watched rather than the file so that editors replacing the file by rename
// are still seen. ready, when non-nil, is closed once the watcher is armed.
func (rt *session) watch(ctx context.Context, path string, ready chan<- struct{}) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer w.Close()
	if err = w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	rt.solveOnce(ctx, path)
	if ready != nil {
		close(ready)
	}

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			rt.log.Info("watch stopped", zap.String("file", path))
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			rt.log.Debug("change detected", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			debounce = time.After(debouncePeriod)

		case <-debounce:
			debounce = nil
			rt.solveOnce(ctx, path)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			rt.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// solveOnce runs one solve and reports failures without stopping the watch.
func (rt *session) solveOnce(ctx context.Context, path string) {
	if err := rt.solveFile(ctx, path); err != nil {
		rt.log.Error("solve failed", zap.Error(err))
		fmt.Fprintf(rt.out, "error: %v\n", err)
		for _, h := range errors.GetAllHints(err) {
			fmt.Fprintf(rt.out, "hint: %s\n", h)
		}
		return
	}
	fmt.Fprintln(rt.out, "---")
}
