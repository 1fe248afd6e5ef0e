package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imageinfo/internal/model"
)

const helpKeyColumnWidth = 14 // Width for key column in help text

// HelpOverlay describes every command and shortcut
type HelpOverlay struct {
	width  int
	height int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay() HelpOverlay {
	return HelpOverlay{}
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	keyStyle := HelpKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var content strings.Builder

	content.WriteString(titleStyle.Render("Help"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("COMMANDS"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "gii=(path)", "Image dimensions, color model, file name, extension, size and pixel colors"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "fem=(path)", "Exif metadata, saved to a summary file. Formats: "+strings.Join(model.ExifExtensions, ", ")))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "is=(ext)", "Count and size every .ext file in your user directories"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "help", "Show this help"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "exit", "Close the application"))

	content.WriteString(sectionStyle.Render("KEYS"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Run command / continue"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Esc", "Back"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "F1", "Toggle this help"))
	content.WriteString(formatHelpLineNoNewline(keyStyle, descStyle, "Ctrl+C", "Quit"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return formatHelpLineNoNewline(keyStyle, descStyle, key, desc) + "\n"
}

// formatHelpLineNoNewline formats a help line without trailing newline
func formatHelpLineNoNewline(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc)
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int, hints ...[2]string) string {
	keyStyle := HelpKey
	sepStyle := HelpStyle

	var parts []string
	for _, hint := range hints {
		parts = append(parts, keyStyle.Render(hint[0])+sepStyle.Render(" "+hint[1]))
	}

	bar := strings.Join(parts, sepStyle.Render("  |  "))

	return HelpStyle.Width(width).Render(bar)
}
