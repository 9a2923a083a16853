package display

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the face used by Text primitives.
var Font = &proggy.TinySZ8pt7b

// frameTarget lets tinyfont draw into a Frame, keeping the first rejected pixel.
type frameTarget struct {
	f   *Frame
	err error
}

func (t *frameTarget) Size() (x, y int16) {
	return int16(t.f.size.X), int16(t.f.size.Y)
}

func (t *frameTarget) SetPixel(x, y int16, c color.RGBA) {
	if err := t.f.SetPixel(V(int32(x), int32(y)), FromRGBA(c)); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *frameTarget) Display() error { return nil }

func drawText(f *Frame, origin Vector, s string, c Color) error {
	if s == "" {
		return nil
	}
	if origin.X < math.MinInt16 || origin.X > math.MaxInt16 || origin.Y < math.MinInt16 || origin.Y > math.MaxInt16 {
		return ErrOutOfBounds
	}
	t := frameTarget{f: f}
	tinyfont.WriteLine(&t, Font, int16(origin.X), int16(origin.Y), s, c.ToRGBA())
	return t.err
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int32 {
	_, w := tinyfont.LineWidth(Font, s)
	return int32(w)
}
