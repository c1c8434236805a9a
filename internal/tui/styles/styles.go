package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/buemura/willie/pkg/types"
)

// Palette. Willie's banner red doubles as the accent.
var (
	ColorCritical = lipgloss.Color("#FFFFFF")
	ColorHigh     = lipgloss.Color("#E53935")
	ColorMedium   = lipgloss.Color("#FFCC00")
	ColorLow      = lipgloss.Color("#00BCD4")
	ColorInfo     = lipgloss.Color("#888888")
	ColorMuted    = lipgloss.Color("#666666")
	ColorAccent   = lipgloss.Color("#C62828")
	ColorSuccess  = lipgloss.Color("#2E7D32")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorAccent).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginBottom(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	CursorStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	QuoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorHigh).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

var severityStyles = map[types.Severity]lipgloss.Style{
	types.SeverityCritical: lipgloss.NewStyle().Bold(true).Foreground(ColorCritical).Background(ColorAccent),
	types.SeverityHigh:     lipgloss.NewStyle().Bold(true).Foreground(ColorHigh),
	types.SeverityMedium:   lipgloss.NewStyle().Foreground(ColorMedium),
	types.SeverityLow:      lipgloss.NewStyle().Foreground(ColorLow),
	types.SeverityInfo:     lipgloss.NewStyle().Faint(true).Foreground(ColorInfo),
}

// SeverityStyle returns the style for a severity level; unknown levels are
// rendered unstyled.
func SeverityStyle(s types.Severity) lipgloss.Style {
	if style, ok := severityStyles[s]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
