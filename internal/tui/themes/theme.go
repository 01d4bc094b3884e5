// Package themes holds the lipgloss styles of the interactive views.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Bold       lipgloss.Style
	Focused    lipgloss.Style
	Muted      lipgloss.Style
	Disabled   lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Success    lipgloss.Style
	Box        lipgloss.Style
	Header     lipgloss.Style
	Primary    lipgloss.Color
	Border     lipgloss.Color
	ErrorColor lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary:    lipgloss.Color("#F4A261"),
	Border:     lipgloss.Color("#404040"),
	ErrorColor: lipgloss.Color("#E76F51"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F4A261")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle(),
	Bold:   lipgloss.NewStyle().Bold(true),
	Focused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F4A261")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Disabled: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")).
		Strikethrough(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E76F51")),
	Warning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E9C46A")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2A9D8F")),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
	Header: lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#404040")),
}
