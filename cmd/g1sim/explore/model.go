// Package explore is the interactive region map behind "g1sim explore": a
// bubbletea program that steps a workload and shows every region's role.
package explore

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/internal/logger"
	"github.com/joshuapare/g1sim/internal/workload"
)

// Layout constants
const (
	maxGridColumns = 64
	minGridColumns = 16
	playInterval   = 120 * time.Millisecond
	statusTimeout  = 2 * time.Second
)

type tickMsg time.Time

type clearStatusMsg struct{}

// Model is the explorer state.
type Model struct {
	workload workload.Workload
	driver   *workload.Driver
	keys     KeyMap
	help     help.Model
	detail   RegionDetail

	width  int
	height int
	cursor int // selected region index

	playing  bool
	showHelp bool

	lastCycle     *gc.CycleEvent
	statusMessage string
	err           error
}

// New builds an explorer for w with the workload at iteration 0.
func New(w workload.Workload) (Model, error) {
	d, err := newDriver(w)
	if err != nil {
		return Model{}, err
	}
	return Model{
		workload: w,
		driver:   d,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		detail:   NewRegionDetail(),
	}, nil
}

// newDriver starts w from iteration 0 with the collector logging to logger.L.
func newDriver(w workload.Workload) (*workload.Driver, error) {
	return workload.NewDriver(w, &workload.Options{Logger: logger.L})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Collector returns the collector being explored.
func (m Model) Collector() *gc.Collector { return m.driver.Collector() }

// Cursor returns the selected region index.
func (m Model) Cursor() int { return m.cursor }

// Playing reports whether the workload is stepping on a timer.
func (m Model) Playing() bool { return m.playing }

// Err returns the error that stopped the explorer, if any.
func (m Model) Err() error { return m.err }

// columns is the region grid width for the current window.
func (m Model) columns() int {
	if m.width == 0 {
		return maxGridColumns
	}
	return max(minGridColumns, min(maxGridColumns, m.width-6))
}

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
