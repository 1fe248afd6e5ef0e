package imaging

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/lumipallolabs/imageinfo/internal/config"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	summaryPrefix  = "Exif_meta"
	suffixRange    = 100000
	maxNameRetries = 16
)

// ExifWriter saves Exif reports as summary files
type ExifWriter struct {
	Fs     afero.Fs
	Dir    string
	Format string // config.FormatText or config.FormatYAML

	now func() time.Time
}

// NewExifWriter creates a writer saving into dir on fsys
func NewExifWriter(fsys afero.Fs, dir, format string) *ExifWriter {
	return &ExifWriter{Fs: fsys, Dir: dir, Format: format, now: time.Now}
}

// Write saves the report and returns the path of the new file. Existing
// files are never overwritten.
func (w *ExifWriter) Write(report *ExifReport) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := w.Fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, ext, err := w.encode(report)
	if err != nil {
		return "", err
	}

	now := time.Now
	if w.now != nil {
		now = w.now
	}
	n := nameSuffix(report.Path, now())

	for i := 0; i < maxNameRetries; i++ {
		path := filepath.Join(dir, SummaryFileName(report.Name, (n+uint64(i))%suffixRange, ext))
		exists, err := afero.Exists(w.Fs, path)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
		if exists {
			continue
		}
		if err := afero.WriteFile(w.Fs, path, data, 0644); err != nil {
			return "", fmt.Errorf("write summary: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free summary file name for %s in %s", report.Name, dir)
}

func (w *ExifWriter) encode(report *ExifReport) ([]byte, string, error) {
	switch w.Format {
	case config.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return nil, "", fmt.Errorf("encode yaml: %w", err)
		}
		return data, ".yaml", nil
	case config.FormatText, "":
		var b strings.Builder
		for _, line := range report.Lines() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return []byte(b.String()), ".txt", nil
	default:
		return nil, "", fmt.Errorf("unknown summary format %q", w.Format)
	}
}

// SummaryFileName builds "Exif_meta  <name>  <n><ext>"
func SummaryFileName(name string, n uint64, ext string) string {
	return fmt.Sprintf("%s  %s  %d%s", summaryPrefix, name, n, ext)
}

func nameSuffix(path string, t time.Time) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.WriteString(t.Format(time.RFC3339Nano))
	return h.Sum64() % suffixRange
}
