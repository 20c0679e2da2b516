// Package theme centralizes the lipgloss styles shared by every component,
// so focus/selection/error coloring stays consistent across the app the
// way a single theme.rs const table does in the original.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Border = lipgloss.Color("240")
	Focus  = lipgloss.Color("39")
	Error  = lipgloss.Color("1")
	Warn   = lipgloss.Color("3")
	Ok     = lipgloss.Color("2")
	Muted  = lipgloss.Color("245")
)

var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	FocusedPanelStyle = PanelStyle.BorderForeground(Focus)

	SelectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	HelpStyle  = lipgloss.NewStyle().Foreground(Muted)
)
