// Package theme holds the terminal palette shared by the prompts and the
// record tables.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	ColorPink     lipgloss.Color = "#f5c2e7"
	ColorMauve    lipgloss.Color = "#cba6f7"
	ColorRed      lipgloss.Color = "#f38ba8"
	ColorPeach    lipgloss.Color = "#fab387"
	ColorYellow   lipgloss.Color = "#f9e2af"
	ColorGreen    lipgloss.Color = "#a6e3a1"
	ColorTeal     lipgloss.Color = "#94e2d5"
	ColorBlue     lipgloss.Color = "#89b4fa"
	ColorLavender lipgloss.Color = "#b4befe"

	ColorText     lipgloss.Color = "#cdd6f4"
	ColorSubtext0 lipgloss.Color = "#a6adc8"
	ColorOverlay1 lipgloss.Color = "#7f849c"
	ColorSurface1 lipgloss.Color = "#45475a"
)

// ---------------------------------------------------------------------------
// Semantic styles
// ---------------------------------------------------------------------------

// Styles bundles the lipgloss styles used across the UI.
type Styles struct {
	Accent   lipgloss.Color
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Cursor   lipgloss.Style
	Question lipgloss.Style
	Answer   lipgloss.Style
}

// New builds the styles around accent. An empty accent falls back to pink.
func New(accent string) Styles {
	a := ColorPink
	if strings.TrimSpace(accent) != "" {
		a = lipgloss.Color(strings.TrimSpace(accent))
	}
	return Styles{
		Accent:   a,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(a),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(ColorLavender).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1),
		Border:   lipgloss.NewStyle().Foreground(ColorSurface1),
		Muted:    lipgloss.NewStyle().Foreground(ColorOverlay1),
		Success:  lipgloss.NewStyle().Foreground(ColorGreen),
		Error:    lipgloss.NewStyle().Foreground(ColorRed),
		Info:     lipgloss.NewStyle().Foreground(ColorTeal),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(a),
		Question: lipgloss.NewStyle().Bold(true).Foreground(ColorText),
		Answer:   lipgloss.NewStyle().Foreground(ColorTeal),
	}
}

// GradeColor maps a normalized grade to its table color.
func GradeColor(grade string) lipgloss.Color {
	switch grade {
	case "A+", "A":
		return ColorGreen
	case "B+", "B":
		return ColorTeal
	case "C":
		return ColorYellow
	case "D", "E":
		return ColorPeach
	case "F":
		return ColorRed
	default:
		return ColorSubtext0
	}
}
