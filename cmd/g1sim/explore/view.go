package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/g1sim/heap/region"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		return m.renderHelp()
	}

	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderGrid(),
		m.renderLegend(),
		m.renderStatus(),
	)

	if m.detail.IsVisible() {
		// Recreated every render: Update returns new models, so a stored
		// background would be stale.
		detailOverlay := overlay.New(
			&m.detail,
			frame(screen),
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return detailOverlay.View()
	}
	return screen
}

func (m Model) renderHeader() string {
	res := m.driver.Result()
	w := m.workload
	progress := fmt.Sprintf("Workload: %s  iteration %d/%d", w.Name, res.Iterations, w.Allocations.Count)
	if res.Exhausted {
		progress += "  (heap exhausted)"
	} else if m.driver.Done() {
		progress += "  (finished)"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("G1 Region Map"),
		"  ",
		pathStyle.Render(progress),
	)
}

// renderGrid draws one cell per region, the selected one reversed.
func (m Model) renderGrid() string {
	store := m.Collector().Store()
	cols := m.columns()

	var b strings.Builder
	for i, r := range store.Regions() {
		if i > 0 && i%cols == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderCell(r, i == m.cursor))
	}
	return paneStyle.Render(b.String())
}

func renderCell(r *region.Region, selected bool) string {
	glyph := roleGlyphs[r.Role()]
	style := roleStyles[r.Role()]
	if selected {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(glyph)
}

func (m Model) renderLegend() string {
	snap := m.Collector().Snapshot()
	parts := make([]string, 0, len(region.Roles))
	for _, role := range region.Roles {
		u := snap.Regions[role]
		parts = append(parts, fmt.Sprintf("%s %s %d (%.1f MiB)",
			roleStyles[role].Render(roleGlyphs[role]), role, u.Regions, float64(u.UsedBytes)/(1<<20)))
	}
	return strings.Join(parts, "   ")
}

func (m Model) renderStatus() string {
	snap := m.Collector().Snapshot()
	r := m.Collector().Store().At(m.cursor)

	line := fmt.Sprintf("%s young  %s mixed  %s full  pause %v  live %s  │  region %d %s %d/%d B",
		statusCountStyle.Render(fmt.Sprint(snap.YoungCycles)),
		statusCountStyle.Render(fmt.Sprint(snap.MixedCycles)),
		statusCountStyle.Render(fmt.Sprint(snap.FullCycles)),
		snap.TotalPause,
		statusCountStyle.Render(fmt.Sprint(snap.LiveObjects)),
		r.Index(), r.Role(), r.Used(), r.Capacity(),
	)
	if ev := m.lastCycle; ev != nil {
		line += fmt.Sprintf("  │  last: #%d %s reclaimed %d", ev.Seq, ev.Kind, ev.Reclaimed)
	}
	if m.playing {
		line += "  │  ▶ playing"
	}
	if m.statusMessage != "" {
		line += "  │  " + m.statusMessage
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		statusStyle.Render(line),
		m.help.View(m.keys),
	)
}

func (m Model) renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		helpTitleStyle.Render("Keyboard Shortcuts"),
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		"Press ? or esc to close",
	)
}
