// Package snapshot renders display frames to images for inspection on the
// host: one square of side scale per panel pixel.
package snapshot

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"rtcore/display"
)

func render(f *display.Frame, scale int) (*gg.Context, error) {
	if f == nil {
		return nil, fmt.Errorf("snapshot: nil frame: %w", display.ErrInvalid)
	}
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(f.Width())*scale, int(f.Height())*scale)
	s := float64(scale)

	var p display.Vector
	for p.Y = 0; p.Y < f.Height(); p.Y++ {
		for p.X = 0; p.X < f.Width(); p.X++ {
			c, err := f.Pixel(p)
			if err != nil {
				return nil, err
			}
			dc.SetColor(c)
			dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
			dc.Fill()
		}
	}
	return dc, nil
}

// Render returns f as an RGBA image.
func Render(f *display.Frame, scale int) (image.Image, error) {
	dc, err := render(f, scale)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG writes f to w as a PNG.
func EncodePNG(w io.Writer, f *display.Frame, scale int) error {
	dc, err := render(f, scale)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes f to path as a PNG.
func SavePNG(path string, f *display.Frame, scale int) error {
	dc, err := render(f, scale)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}
