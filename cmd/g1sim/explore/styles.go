package explore

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/g1sim/heap/region"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginBottom(1)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1).
			MarginTop(1)

	statusCountStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1).
			MarginBottom(1)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().Reverse(true)
)

// roleGlyphs is the grid cell for each role.
var roleGlyphs = map[region.Role]string{
	region.Free:      "·",
	region.Eden:      "E",
	region.Survivor:  "S",
	region.Old:       "O",
	region.Oversized: "H",
}

var roleStyles = map[region.Role]lipgloss.Style{
	region.Free:      lipgloss.NewStyle().Foreground(mutedColor),
	region.Eden:      lipgloss.NewStyle().Foreground(successColor),
	region.Survivor:  lipgloss.NewStyle().Foreground(secondaryColor),
	region.Old:       lipgloss.NewStyle().Foreground(warningColor),
	region.Oversized: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
}
