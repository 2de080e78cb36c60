package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
)

var (
	headerStyle      = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	valueStyle       = lipgloss.NewStyle().Foreground(colorText)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	clearHintStyle   = lipgloss.NewStyle().Foreground(colorSurface2)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Padding(0, 1)
	chipSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBlue).
				Background(colorSurface0).
				Bold(true).
				Padding(0, 1)
	chipCursorStyle = lipgloss.NewStyle().
			Foreground(colorPeach).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle)

	statusStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorRed)

	keyStyle      = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
)
