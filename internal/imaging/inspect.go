// Package imaging reads single image files: dimensions, color breakdown and
// Exif metadata.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lumipallolabs/imageinfo/internal/model"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes a decoded image file
type ImageInfo struct {
	Path       string
	Name       string
	Extension  string
	Width      int
	Height     int
	Format     string // decoder that read the file
	ColorModel string
	MIME       string // detected from content, not the extension
	Size       int64
	Pixels     PixelStats
}

// Inspect decodes the image at path. The path must carry an image extension,
// otherwise model.ErrNotImage is returned.
func Inspect(path string) (*ImageInfo, error) {
	path = strings.TrimSpace(path)
	ext := model.ExtensionOf(path)
	if !model.IsImageExtension(ext) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), model.ErrNotImage)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Path:       path,
		Name:       filepath.Base(path),
		Extension:  ext,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Format:     format,
		ColorModel: colorModelName(img.ColorModel()),
		MIME:       detectMIME(path),
		Size:       stat.Size(),
		Pixels:     CountPixels(img),
	}, nil
}

// detectMIME detects file type using magic numbers
func detectMIME(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mtype.String()
}

func colorModelName(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	case color.CMYKModel:
		return "CMYK"
	}
	return fmt.Sprintf("%T", m)
}
