package viewer

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lddscreen/internal/assessment"
)

// Palette, calm and high-contrast.
var (
	colorPrimary  = lipgloss.Color("#3B82F6") // Blue
	colorLow      = lipgloss.Color("#22C55E") // Green
	colorModerate = lipgloss.Color("#F59E0B") // Amber
	colorHigh     = lipgloss.Color("#F43F5E") // Rose
	colorText     = lipgloss.Color("#F8FAFC") // White
	colorTextDim  = lipgloss.Color("#94A3B8") // Slate
	colorBgCard   = lipgloss.Color("#1E293B") // Dark Slate
	colorBorder   = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Underline(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorText)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	barStyle = lipgloss.NewStyle().
			Background(colorBgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)
)

// riskStyle colors a risk tier; an absent tier is dimmed.
func riskStyle(level *assessment.RiskLevel) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if level == nil {
		return s.Foreground(colorTextDim)
	}
	switch level.Level {
	case assessment.RiskLow:
		return s.Foreground(colorLow)
	case assessment.RiskModerate:
		return s.Foreground(colorModerate)
	default:
		return s.Foreground(colorHigh)
	}
}
