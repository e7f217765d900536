package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for the active button, headings
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for disabled controls, hints
	ColorText      = "252" // Light gray - for result rows
)

// Styles contains shared style definitions used by the search view.
var Styles = struct {
	Title          lipgloss.Style // Bold accent color - page title
	Button         lipgloss.Style // Enabled Search button
	ButtonDisabled lipgloss.Style // Search button while the query is empty
	Status         lipgloss.Style // "Searching..." line
	Section        lipgloss.Style // Result headings
	Item           lipgloss.Style // One result row
	Empty          lipgloss.Style // No-results heading
	Error          lipgloss.Style // Failure message
	Box            lipgloss.Style // Frame around the whole view
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	ButtonDisabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		PaddingLeft(2),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
}

// newHelpModel returns a help.Model using the shared palette.
func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	return h
}

// boxChrome is the horizontal space Box and Item take from a line:
// margin, border, padding and the item indent.
const boxChrome = 10
