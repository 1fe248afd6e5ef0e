package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/imageinfo/internal/command"
	"github.com/lumipallolabs/imageinfo/internal/core"
	"github.com/lumipallolabs/imageinfo/internal/imaging"
	"github.com/lumipallolabs/imageinfo/internal/model"
)

const (
	treemapMaxWidth = 72
	treemapHeight   = 8
)

// RenderTask renders the title shown above a running task or its result
func RenderTask(title string) string {
	return "|-" + TaskStyle.Render(title) + "-|"
}

// RenderImageInfo renders the result of an image info task
func RenderImageInfo(info *imaging.ImageInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "|-Image dimensions: (%dx%d)px\n", info.Width, info.Height)
	fmt.Fprintf(&b, "|-Image color model: %s\n", info.ColorModel)
	fmt.Fprintf(&b, "|-Image format: %s", info.Format)
	if info.MIME != "" {
		fmt.Fprintf(&b, " (%s)", info.MIME)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "|-Image file name: %s\n", info.Name)
	fmt.Fprintf(&b, "|-Image file extension: %s\n", info.Extension)
	fmt.Fprintf(&b, "|-Image file size: %s\n", FormatSize(uint64(info.Size)))
	b.WriteString("|-Image pixels info:\n")

	p := info.Pixels
	rows := []struct {
		label string
		color lipgloss.Color
		n     uint64
	}{
		{"Red", ColorRed, p.Red},
		{"Green", ColorGreen, p.Green},
		{"Blue", ColorBlue, p.Blue},
		{"Other", ColorGray, p.Other},
	}
	for _, r := range rows {
		label := lipgloss.NewStyle().Foreground(r.color).Bold(true).Render(r.label)
		fmt.Fprintf(&b, "|-[%s]-> (%s %%)\n", label, BoldStyle.Render(fmt.Sprintf("%.2f", p.Percent(r.n))))
	}
	b.WriteString("|")
	return b.String()
}

// RenderExif renders the result of an Exif task
func RenderExif(res *core.ExifResult) string {
	var b strings.Builder
	r := res.Report

	fmt.Fprintf(&b, "|-Image %s metadata fetched successfully!\n", BoldStyle.Render("Exif"))
	fmt.Fprintf(&b, "|-Image filename-> %s, type-> %s, exif entries-> %d\n", r.Name, r.Extension, len(r.Entries))
	b.WriteString("|" + strings.Repeat("=", 51) + "|\n|\n")
	for _, line := range r.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("|\n")
	fmt.Fprintf(&b, "|-%s-> See in path: %s\n|", NoticeBadge.Render("Output file created!"), res.SummaryPath)
	return b.String()
}

// RenderScanResult renders the per-root table, totals and byte treemap of
// an extension scan
func RenderScanResult(res *model.ScanResult, width int) string {
	if res.NoMatches() {
		msg := fmt.Sprintf("|-No .%s files found in your user directories.", res.Extension)
		if res.SkippedFiles > 0 {
			msg += fmt.Sprintf("\n|-%s unreadable files skipped.", FormatCount(res.SkippedFiles))
		}
		return msg + "\n|"
	}

	var b strings.Builder
	b.WriteString(scanTable(res))
	b.WriteString("\n")
	fmt.Fprintf(&b, "|-Total .%s files: %s\n", res.Extension, BoldStyle.Render(FormatCount(res.TotalFiles)))
	fmt.Fprintf(&b, "|-Total size: %s\n", BoldStyle.Render(FormatSize(res.TotalBytes)))
	if res.SkippedFiles > 0 {
		fmt.Fprintf(&b, "|-%s\n", MutedStyle.Render(FormatCount(res.SkippedFiles)+" files skipped, size unreadable"))
	}
	for _, t := range res.PerRoot {
		if t.SameAs != "" && t.Files > 0 {
			note := fmt.Sprintf("%s is the same directory as %s, its files are counted twice", t.Root.Label(), t.SameAs.Label())
			fmt.Fprintf(&b, "|-%s\n", MutedStyle.Render(note))
		}
	}

	tmWidth := treemapMaxWidth
	if width > 0 && width-2 < tmWidth {
		tmWidth = width - 2
	}
	tm := NewRootTreemap(res.PerRoot)
	tm.SetSize(tmWidth, treemapHeight)
	b.WriteString("\n")
	b.WriteString(tm.View())
	return b.String()
}

func scanTable(res *model.ScanResult) string {
	columns := []table.Column{
		{Title: "Directory", Width: 16},
		{Title: "Files", Width: 10},
		{Title: "Size", Width: 12},
	}

	rows := make([]table.Row, 0, len(res.PerRoot))
	for _, t := range res.PerRoot {
		rows = append(rows, table.Row{t.Root.Label(), FormatCount(t.Files), FormatSize(t.Bytes)})
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+3),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	tbl.SetStyles(s)

	return tbl.View()
}

// RenderError renders a failed task with a message suited to the error
func RenderError(err error) string {
	switch {
	case errors.Is(err, model.ErrUnsupportedExtension):
		return fmt.Sprintf("|-Sorry, that is not a supported image extension.\n|-Supported formats -> [%s]\n|",
			strings.Join(model.ImageExtensions, ", "))
	case errors.Is(err, model.ErrNotImage):
		return fmt.Sprintf("|%s->This is not an image! (%v)\n|", ErrorBadge.Render("Error!"), err)
	case errors.Is(err, model.ErrExifUnsupported):
		return fmt.Sprintf("|-Sorry, this image format does not support %s metadata.\n|-Supported formats -> [%s]\n|",
			BoldStyle.Render("Exif"), strings.ToUpper(strings.Join(model.ExifExtensions, ", ")))
	default:
		return fmt.Sprintf("|-%s %v\n|", ErrorBadge.Render("Error!"), err)
	}
}

// RenderUnknownCommand renders the rejected-command line
func RenderUnknownCommand(input string) string {
	if input == "" {
		input = command.EmptyInput
	}
	return "|" + ErrorBadge.Render("Unknown command!") + "->" + StruckStyle.Render(input) + "->" + NoticeBadge.Render("See commands list")
}

// RenderBye renders the exit message
func RenderBye() string {
	return "|-" + ByeBadge.Render("Thanks for using!")
}
