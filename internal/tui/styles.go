package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#F7D02C")
	colorMuted   = lipgloss.Color("#6C6C6C")
	colorError   = lipgloss.Color("#E06C75")
	colorOK      = lipgloss.Color("#98C379")
	colorSpinner = lipgloss.Color("#61AFEF")

	// Backdrop behind transparent pixels so a black silhouette stays visible
	// on dark terminals.
	pictureBackdrop = lipgloss.Color("#E4E4E4")
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	MutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(colorError)
	OKStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	CursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	SelectedStyle = lipgloss.NewStyle().Reverse(true)
	HintLabel     = lipgloss.NewStyle().Width(10).Foreground(colorMuted)
	PanelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)
