package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for consistent styling
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#6B4FD8")

	// Status colors
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorError   = lipgloss.Color("#FF5F87")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorInfo    = lipgloss.Color("#8BE9FD")

	// Neutral colors
	ColorMuted   = lipgloss.Color("#6C7086")
	ColorSubtle  = lipgloss.Color("#45475A")
	ColorText    = lipgloss.Color("#CDD6F4")
	ColorTextDim = lipgloss.Color("#A6ADC8")

	// Spinner colors
	ColorSpinner = lipgloss.Color("#89B4FA")
)

// Reusable styles
var (
	// Title style for headers
	StyleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1).
			Bold(true)

	// Subtitle style
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)

	// Success message style
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// Error message style
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Muted/dimmed text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Speaker labels
	StyleUserLabel = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	StyleAssistantLabel = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// Message body
	StyleMessage = lipgloss.NewStyle().
			Foreground(ColorText).
			PaddingLeft(2)

	// Box styles for the help panel
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	StyleSpinner = lipgloss.NewStyle().
			Foreground(ColorSpinner)
)

// Icons for different states
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconBullet  = "•"
)
