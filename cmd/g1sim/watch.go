package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/joshuapare/g1sim/internal/logger"
)

// settle coalesces the burst of events editors emit for one save.
const settle = 100 * time.Millisecond

func init() {
	rootCmd.AddCommand(newWatchCmd())
}

func newWatchCmd() *cobra.Command {
	opts := runOptions{every: -1}

	cmd := &cobra.Command{
		Use:   "watch <workload.json>",
		Short: "Re-run a workload every time its file changes",
		Long: `The watch command runs a workload once, then again after every save of
the workload file, until interrupted. Each run starts from a fresh heap.

Example:
  g1sim watch workload.json --every 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchWorkload(ctx, args[0], settle, func() error {
				return runRun(ctx, args, opts)
			})
		},
	}
	cmd.Flags().IntVar(&opts.every, "every", -1, "Print heap status every N iterations (0 disables)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check heap invariants after every iteration")
	return cmd
}

// watchWorkload calls rerun once and again whenever path is written or
// replaced, until ctx is done. Run errors are reported and watching goes on.
// The parent directory is watched so a file replaced by rename is seen.
func watchWorkload(ctx context.Context, path string, delay time.Duration, rerun func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	run := func() {
		if err := rerun(); err != nil {
			printError("%v\n", err)
		}
	}
	run()
	printInfo("\nWatching %s (Ctrl-C to stop)\n", path)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("workload changed", "path", ev.Name, "op", ev.Op.String())
			timer = time.After(delay)
		case <-timer:
			timer = nil
			printInfo("\n%s changed, re-running\n", path)
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
