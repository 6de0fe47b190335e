package render

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the result panel and the TUI use.
const (
	ColorRed      lipgloss.Color = "#f38ba8"
	ColorPeach    lipgloss.Color = "#fab387"
	ColorYellow   lipgloss.Color = "#f9e2af"
	ColorGreen    lipgloss.Color = "#a6e3a1"
	ColorTeal     lipgloss.Color = "#94e2d5"
	ColorBlue     lipgloss.Color = "#89b4fa"
	ColorLavender lipgloss.Color = "#b4befe"
	ColorPink     lipgloss.Color = "#f5c2e7"

	ColorText     lipgloss.Color = "#cdd6f4"
	ColorSubtext0 lipgloss.Color = "#a6adc8"
	ColorOverlay1 lipgloss.Color = "#7f849c"
	ColorSurface1 lipgloss.Color = "#45475a"
	ColorBase     lipgloss.Color = "#1e1e2e"
)

const (
	ColorAccent  = ColorPink
	ColorFocus   = ColorLavender
	ColorSuccess = ColorGreen
	ColorError   = ColorRed
	ColorWarning = ColorYellow
	ColorMuted   = ColorOverlay1
)
