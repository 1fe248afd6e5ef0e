package imaging

import (
	"image"
	"image/color"
)

// PixelStats counts pure red, green and blue pixels. Alpha is ignored.
type PixelStats struct {
	Total uint64
	Red   uint64
	Green uint64
	Blue  uint64
	Other uint64
}

// CountPixels classifies every pixel of img
func CountPixels(img image.Image) PixelStats {
	var s PixelStats
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			s.Total++
			switch {
			case c.R == 255 && c.G == 0 && c.B == 0:
				s.Red++
			case c.R == 0 && c.G == 255 && c.B == 0:
				s.Green++
			case c.R == 0 && c.G == 0 && c.B == 255:
				s.Blue++
			default:
				s.Other++
			}
		}
	}
	return s
}

// Percent returns n as a percentage of all pixels
func (s PixelStats) Percent(n uint64) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}
