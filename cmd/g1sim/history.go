package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/g1sim/internal/gclog"
)

func init() {
	rootCmd.AddCommand(newHistoryCmd())
}

func newHistoryCmd() *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "history <dir>",
		Short: "List cycle events recorded by run --history",
		Long: `The history command lists every collection cycle stored in a history
directory written by "g1sim run --history", followed by totals per cycle kind.

Example:
  g1sim history ./gc-history
  g1sim history ./gc-history --summary --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(args[0], summaryOnly)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only the totals")
	return cmd
}

func runHistory(dir string, summaryOnly bool) error {
	printVerbose("Opening history: %s\n", dir)

	// pebble would create a missing directory; a typo should not look like
	// an empty history.
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	l, err := gclog.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer l.Close()

	summary, err := l.Summarize()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if jsonOut {
		if summaryOnly {
			return printJSON(summary)
		}
		entries, err := l.Entries()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		return printJSON(struct {
			Entries []gclog.Entry `json:"entries"`
			Summary gclog.Summary `json:"summary"`
		}{entries, summary})
	}

	if !summaryOnly {
		err = l.Scan(func(e gclog.Entry) error {
			ev := e.Event
			printInfo("%6d  %s  %-5s seq %-4d pause %-10v reclaimed %d, promoted %d, live %d\n",
				e.Index, ev.Start.Format(time.RFC3339), ev.Kind, ev.Seq,
				ev.Pause.Round(time.Microsecond), ev.Reclaimed, ev.Promoted, ev.LiveObjects)
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
	}

	printInfo("\nHistory %s:\n", dir)
	printInfo("  Cycles: %d (young %d, mixed %d, full %d)\n", summary.Entries, summary.Young, summary.Mixed, summary.Full)
	printInfo("  Reclaimed objects: %d\n", summary.Reclaimed)
	printInfo("  Total pause: %v, longest %v\n",
		summary.TotalPause.Round(time.Microsecond), summary.LongestStop.Round(time.Microsecond))
	return nil
}
