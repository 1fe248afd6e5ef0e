package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const logo = `
 ___                              ___        __
|_ _|_ __ ___   __ _  __ _  ___  |_ _|_ __  / _| ___
 | || '_ ' _ \ / _' |/ _' |/ _ \  | || '_ \| |_ / _ \
 | || | | | | | (_| | (_| |  __/  | || | | |  _| (_) |
|___|_| |_| |_|\__,_|\__, |\___| |___|_| |_|_|  \___/
                     |___/`

// commandHints are the commands listed under the logo
var commandHints = []struct {
	syntax string
	desc   string
}{
	{"gii=(path)", "image info"},
	{"fem=(path)", "Exif metadata"},
	{"is=(ext)", "scan user dirs for an extension"},
	{"help", "help"},
	{"exit", "quit"},
}

// Header displays the logo, description and command list
type Header struct {
	width int
}

// NewHeader creates a new header component
func NewHeader() Header {
	return Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	var b strings.Builder

	b.WriteString(LogoStyle.Render(strings.TrimPrefix(logo, "\n")))
	b.WriteString("\n\n")
	b.WriteString(DescriptionStyle.Render("• Get information about images and more!"))
	b.WriteString("\n")

	var lines []string
	for _, c := range commandHints {
		lines = append(lines, HelpKey.Width(14).Render(c.syntax)+MutedStyle.Render(c.desc))
	}
	commands := PanelStyle.Render(strings.Join(lines, "\n"))

	b.WriteString(commands)
	return lipgloss.NewStyle().MaxWidth(max(h.width, lipgloss.Width(commands))).Render(b.String())
}
