package display

import "image/color"

// Color is a 16-bit RGB565 pixel value: rrrrrggggggbbbbb.
type Color uint16

const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
)

// RGB packs 5-bit red, 6-bit green and 5-bit blue channels. Extra bits are dropped.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0x1F)<<11 | uint16(g&0x3F)<<5 | uint16(b&0x1F))
}

// Channels returns the raw 5/6/5 channel values.
func (c Color) Channels() (r, g, b uint8) {
	return uint8(c>>11) & 0x1F, uint8(c>>5) & 0x3F, uint8(c) & 0x1F
}

// FromRGBA converts an 8-bit-per-channel colour, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R>>3, c.G>>2, c.B>>3)
}

// ToRGBA expands c to 8 bits per channel, fully opaque.
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.Channels()
	return color.RGBA{
		R: uint8((uint16(r) * 255) / 31),
		G: uint8((uint16(g) * 255) / 63),
		B: uint8((uint16(b) * 255) / 31),
		A: 0xFF,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.ToRGBA().RGBA()
}
