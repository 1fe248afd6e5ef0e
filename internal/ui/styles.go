package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorCyan      = lipgloss.Color("#22D3EE")
	ColorSuccess   = lipgloss.Color("#73F59F")
	ColorWarning   = lipgloss.Color("#F5A623")
	ColorDanger    = lipgloss.Color("#F56565")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#3F3F46")
	ColorText      = lipgloss.Color("#E4E4E7")

	// Pixel breakdown
	ColorRed   = lipgloss.Color("#EF4444")
	ColorGreen = lipgloss.Color("#22C55E")
	ColorBlue  = lipgloss.Color("#3B82F6")
	ColorGray  = lipgloss.Color("#9CA3AF")
)

// blockColors are cycled through for treemap blocks
var blockColors = []lipgloss.Color{
	"#4C1D95", "#1E3A8A", "#065F46", "#7C2D12",
	"#831843", "#134E4A", "#3F3F46",
}

// Styles
var (
	// Header
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorCyan).
				Italic(true)

	// Task title shown while running and above results
	TaskStyle = lipgloss.NewStyle().
			Background(ColorSuccess).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorBadge = lipgloss.NewStyle().
			Background(ColorDanger).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	NoticeBadge = lipgloss.NewStyle().
			Background(ColorWarning).
			Foreground(lipgloss.Color("#000000")).
			Padding(0, 1).
			Bold(true)

	ByeBadge = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	StruckStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// FormatSize formats bytes the way results are reported: "0 b", "2.00 kb",
// "1.00 mb", "1.00 gb". Units are powers of 1024.
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f gb", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f mb", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f kb", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d b", bytes)
	}
}

// FormatCount formats a file count with thousands separators
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}
