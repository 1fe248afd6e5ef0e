package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lumipallolabs/imageinfo/internal/model"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifEntry is one decoded Exif field
type ExifEntry struct {
	Tag   string `yaml:"tag"`
	Value string `yaml:"value"`
}

// ExifReport holds the Exif fields of one image, sorted by tag name
type ExifReport struct {
	Path      string      `yaml:"-"`
	Name      string      `yaml:"file"`
	Extension string      `yaml:"extension"`
	Entries   []ExifEntry `yaml:"entries"`
}

// ExtractExif reads the Exif block of the image at path. Formats that can't
// carry Exif return model.ErrExifUnsupported.
func ExtractExif(path string) (*ExifReport, error) {
	path = strings.TrimSpace(path)
	ext := model.ExtensionOf(path)
	if !model.IsExifExtension(ext) {
		return nil, fmt.Errorf("%q: %w", ext, model.ErrExifUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode exif: %w", err)
	}

	var c fieldCollector
	if err := x.Walk(&c); err != nil {
		return nil, fmt.Errorf("walk exif: %w", err)
	}

	// Walk iterates a map
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].Tag < c.entries[j].Tag
	})

	return &ExifReport{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: ext,
		Entries:   c.entries,
	}, nil
}

// Lines renders the report as numbered "|-[i]->|Tag|\tValue" lines
func (r *ExifReport) Lines() []string {
	lines := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		lines[i] = fmt.Sprintf("|-[%d]->|%s|\t%s", i+1, e.Tag, e.Value)
	}
	return lines
}

type fieldCollector struct {
	entries []ExifEntry
}

func (c *fieldCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c.entries = append(c.entries, ExifEntry{Tag: string(name), Value: tagValue(tag)})
	return nil
}

func tagValue(tag *tiff.Tag) string {
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			return s
		}
	}
	return tag.String()
}
