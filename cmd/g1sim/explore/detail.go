package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/g1sim/heap/region"
)

// RegionDetail is the modal listing one region and its residents.
type RegionDetail struct {
	region   *region.Region
	viewport viewport.Model
	width    int
	height   int
	visible  bool
}

// NewRegionDetail creates a hidden detail view.
func NewRegionDetail() RegionDetail {
	return RegionDetail{viewport: viewport.New(0, 0)}
}

// Init implements tea.Model
func (d RegionDetail) Init() tea.Cmd {
	return nil
}

// Show displays r.
func (d *RegionDetail) Show(r *region.Region) {
	d.region = r
	d.visible = true
	d.updateContent()
}

// Hide closes the detail view
func (d *RegionDetail) Hide() {
	d.visible = false
	d.region = nil
}

// IsVisible returns whether the detail view is currently shown
func (d *RegionDetail) IsVisible() bool {
	return d.visible
}

// Refresh rebuilds the content after the heap changed.
func (d *RegionDetail) Refresh() {
	if d.visible {
		d.updateContent()
	}
}

// Update handles messages
func (d *RegionDetail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		d.width = msg.Width
		d.height = msg.Height
		// Modal takes 60% of the screen; border and padding take 6 columns, 4 rows.
		d.viewport.Width = max(20, int(float64(d.width)*0.6)-6)
		d.viewport.Height = max(5, int(float64(d.height)*0.6)-4)
		d.updateContent()
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View implements tea.Model
func (d *RegionDetail) View() string {
	return detailStyle.Render(d.viewport.View())
}

// Content returns the unstyled body, for tests.
func (d *RegionDetail) Content() string {
	return d.content()
}

func (d *RegionDetail) updateContent() {
	d.viewport.SetContent(d.content())
	d.viewport.GotoTop()
}

func (d *RegionDetail) content() string {
	r := d.region
	if r == nil {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	b.WriteString(title.Render(fmt.Sprintf("Region %d", r.Index())))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Role:     %s\n", r.Role())
	fmt.Fprintf(&b, "Used:     %d / %d bytes (%.1f%%)\n", r.Used(), r.Capacity(), r.Fill()*100)
	fmt.Fprintf(&b, "Objects:  %d\n", r.Len())

	if r.Role() == region.Oversized && r.Empty() {
		b.WriteString("\nContinuation of an oversized object in an earlier region.\n")
		return b.String()
	}
	if r.Empty() {
		return b.String()
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%8s  %10s  %4s  %5s  %s\n", "ID", "SIZE", "AGE", "SPAN", "REACHABLE")
	for _, obj := range r.Objects() {
		fmt.Fprintf(&b, "%8d  %10d  %4d  %5d  %t\n", obj.ID, obj.Size, obj.Age, obj.Span, obj.Reachable)
	}
	return b.String()
}

// frame is a rendered screen used as the overlay background.
type frame string

func (f frame) Init() tea.Cmd                       { return nil }
func (f frame) Update(tea.Msg) (tea.Model, tea.Cmd) { return f, nil }
func (f frame) View() string                        { return string(f) }
