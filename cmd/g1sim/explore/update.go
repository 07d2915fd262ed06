package explore

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/g1sim/heap/gc"
	"github.com/joshuapare/g1sim/internal/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		_, cmd := (&m.detail).Update(msg)
		return m, cmd

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.step()
		if m.err != nil || m.driver.Done() {
			m.playing = false
			return m, nil
		}
		return m, tick()

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// If help is showing, only closing keys do anything
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
		}
		return m, nil
	}

	// If detail view is open, it takes scrolling keys
	if m.detail.IsVisible() {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Enter) {
			m.detail.Hide()
			return m, nil
		}
		_, cmd := (&m.detail).Update(msg)
		return m, cmd
	}

	if m.err != nil {
		return m, nil
	}

	regions := m.Collector().Store().Len()
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Left):
		m.cursor = max(0, m.cursor-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = min(regions-1, m.cursor+1)
	case key.Matches(msg, m.keys.Up):
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+cols < regions {
			m.cursor += cols
		}
	case key.Matches(msg, m.keys.Enter):
		m.detail.Show(m.Collector().Store().At(m.cursor))
	case key.Matches(msg, m.keys.Step):
		m.playing = false
		m.step()
	case key.Matches(msg, m.keys.Play):
		if m.driver.Done() {
			return m.withStatus("workload finished; press r to restart")
		}
		m.playing = !m.playing
		if m.playing {
			return m, tick()
		}
	case key.Matches(msg, m.keys.Young):
		m.collect(m.Collector().CollectYoung)
	case key.Matches(msg, m.keys.Mixed):
		m.collect(m.Collector().CollectMixed)
	case key.Matches(msg, m.keys.Full):
		m.collect(m.Collector().CollectFull)
	case key.Matches(msg, m.keys.Restart):
		d, err := newDriver(m.workload)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.driver = d
		m.playing = false
		m.lastCycle = nil
		return m.withStatus("workload restarted")
	case key.Matches(msg, m.keys.Copy):
		return m.copySnapshot()
	}
	return m, nil
}

// step advances the workload by one iteration.
func (m *Model) step() {
	if m.driver.Done() {
		return
	}
	before := len(m.driver.Result().Events)
	if err := m.driver.Step(); err != nil {
		logger.Error("workload step failed", "error", err)
		m.err = err
		return
	}
	if events := m.driver.Result().Events; len(events) > before {
		m.lastCycle = &events[len(events)-1]
	}
	m.detail.Refresh()
}

func (m *Model) collect(cycle func() gc.CycleEvent) {
	ev := cycle()
	m.lastCycle = &ev
	m.detail.Refresh()
}

func (m Model) copySnapshot() (tea.Model, tea.Cmd) {
	data, err := json.MarshalIndent(m.Collector().Snapshot(), "", "  ")
	if err == nil {
		err = clipboard.WriteAll(string(data))
	}
	if err != nil {
		logger.Warn("copy failed", "error", err)
		return m.withStatus(fmt.Sprintf("copy failed: %v", err))
	}
	return m.withStatus("snapshot copied to clipboard")
}

func (m Model) withStatus(msg string) (tea.Model, tea.Cmd) {
	m.statusMessage = msg
	return m, clearStatusAfter()
}
