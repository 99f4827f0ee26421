package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Application branding constants
const (
	AppName   = "MAGICHOME CONTROLLER"
	GitHubURL = "github.com/tikitko/magichome"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	SliderWidth      = 32 // Width of the channel slider bars
)

// Color palette
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	// Neutral colors
	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BorderColor     = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor  = lipgloss.Color("#43BF6D") // Green (same as secondary)
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray

	// Channel colors for the sliders
	RedChannelColor   = lipgloss.Color("#FF5555")
	GreenChannelColor = lipgloss.Color("#55FF55")
	BlueChannelColor  = lipgloss.Color("#5555FF")
)

// Common styles
var (
	// Title style - bold, centered
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	// Info box style
	InfoBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2).
			MarginTop(1).
			MarginBottom(1)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Background(BackgroundColor).
			Padding(0, 1)

	// Spinner style
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Power state styles
	PowerOnStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	PowerOffStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Bold(true)

	// Selected channel label style
	SelectedChannelStyle = lipgloss.NewStyle().
				Foreground(HighlightColor).
				Bold(true)

	// Unselected channel label style
	ChannelStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Pending-change marker style
	PendingStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)
