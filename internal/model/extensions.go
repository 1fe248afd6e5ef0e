package model

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedExtension is returned when a scan is requested for a non-image extension.
	ErrUnsupportedExtension = errors.New("unsupported image extension")

	// ErrNotImage is returned when a path does not carry an image extension.
	ErrNotImage = errors.New("not an image")

	// ErrExifUnsupported is returned for image formats that carry no Exif metadata.
	ErrExifUnsupported = errors.New("format does not support exif metadata")
)

// ImageExtensions are the extensions recognised as images. Matching is exact
// and case-sensitive: "PNG" is not "png".
var ImageExtensions = []string{
	"png", "jpg", "jpeg", "gif", "webp",
	"raw", "tiff", "tif", "svg", "heic",
	"heif", "ico", "bmp", "psd", "avif",
}

// ExifExtensions are the image extensions that may carry Exif metadata
var ExifExtensions = []string{
	"jpeg", "jpg", "tif", "tiff", "webp",
	"heic", "heif",
}

// IsImageExtension reports whether ext is a supported image extension
func IsImageExtension(ext string) bool {
	return contains(ImageExtensions, ext)
}

// IsExifExtension reports whether ext may carry Exif metadata
func IsExifExtension(ext string) bool {
	return contains(ExifExtensions, ext)
}

// ExtensionOf returns the extension of a file name or path without the dot.
// Names like ".png" are treated as extensionless hidden files.
func ExtensionOf(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
