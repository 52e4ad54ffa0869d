package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#2563EB"
	colorText    = "#1E293B"
	colorMuted   = "#94A3B8"
	colorError   = "#DC2626"
	colorBorder  = "#CBD5E1"
	colorTabBg   = "#E2E8F0"
)

// Styles for the TUI application
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary))

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorText))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorError)).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	QuoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(colorMuted)).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			PaddingLeft(1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			Background(lipgloss.Color(colorTabBg)).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 1)

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Underline(true)
)
