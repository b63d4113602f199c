package tui

import (
	"github.com/charmbracelet/lipgloss"

	"hueareyou/internal/palette"
)

var (
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6B7280")
	Destructive = lipgloss.Color("#E53935")
)

// Styles groups the lipgloss styles used by the views
type Styles struct {
	Title   lipgloss.Style
	Word    lipgloss.Style
	Help    lipgloss.Style
	Error   lipgloss.Style
	Status  lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Box     lipgloss.Style
}

// DefaultStyles returns the styles for a dark or light terminal
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Word:    lipgloss.NewStyle().Bold(true).Padding(1, 4).Border(lipgloss.RoundedBorder()).BorderForeground(Accent),
		Help:    lipgloss.NewStyle().Foreground(Muted),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
		Status:  lipgloss.NewStyle().Foreground(Accent),
		Label:   lipgloss.NewStyle().Width(10),
		Focused: lipgloss.NewStyle().Width(10).Bold(true).Foreground(Accent),
		Box:     lipgloss.NewStyle().Padding(0, 1),
	}
}

// swatch renders label on its own color with a readable foreground
func swatch(c palette.Color, label string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(textColor(c))).
		Padding(0, 1).
		Render(label)
}

func textColor(c palette.Color) string {
	switch c {
	case palette.White, palette.Yellow, palette.Pink, palette.Orange:
		return "#000000"
	default:
		return "#FFFFFF"
	}
}
