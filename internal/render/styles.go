package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles groups the lipgloss styles used by a Renderer
type Styles struct {
	Header     lipgloss.Style
	Operator   lipgloss.Style
	Identifier lipgloss.Style
	Number     lipgloss.Style
	Connector  lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the coloured styles
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		Operator: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent),

		Identifier: lipgloss.NewStyle().
			Foreground(colorSecondary),

		Number: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")),

		Connector: lipgloss.NewStyle().
			Foreground(colorMuted),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true),
	}
}
