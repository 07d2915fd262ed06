package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/g1sim/cmd/g1sim/explore"
	"github.com/joshuapare/g1sim/internal/logger"
)

func init() {
	rootCmd.AddCommand(newExploreCmd())
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [workload.json]",
		Short: "Step a workload interactively on a live region map",
		Long: `The explore command opens a terminal view of every heap region, colored
by role. Step the workload one iteration at a time or let it play, trigger
young, mixed and full collections by hand, and open any region to list its
objects.

Example:
  g1sim explore
  g1sim explore workload.json --debug 2>explore.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplore(args)
		},
	}
}

func runExplore(args []string) error {
	w, err := loadWorkload(args)
	if err != nil {
		return err
	}

	m, err := explore.New(w)
	if err != nil {
		return err
	}

	logger.Info("starting explorer", "workload", w.Name, "regions", w.Heap.RegionCount)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running explorer: %w", err)
	}
	if fm, ok := final.(explore.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
