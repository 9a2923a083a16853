package display

import (
	"errors"
	"fmt"
)

// Depth is the number of bits stored per pixel.
type Depth uint8

const (
	Depth1  Depth = 1
	Depth16 Depth = 16
)

var (
	ErrOutOfBounds = errors.New("display: pixel out of bounds")
	ErrInvalid     = errors.New("display: invalid argument")
)

// Frame is the in-memory copy of a panel's pixels.
//
// A 1-bit frame is packed column-major in 8-pixel pages: pixel (x, y) lives
// in byte ((x*height)+y)/8 at bit y%8. A 16-bit frame is a row-major array of
// RGB565 values.
type Frame struct {
	size   Vector
	depth  Depth
	packed bool
	bits   []byte
	pix    []Color
}

// NewFrame allocates a frame. Depth1 frames use the packed layout.
func NewFrame(width, height int32, depth Depth) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("display: frame %dx%d: %w", width, height, ErrInvalid)
	}
	f := &Frame{}
	switch depth {
	case Depth1:
		if height%8 != 0 {
			return nil, fmt.Errorf("display: 1-bit frame height %d not a multiple of 8: %w", height, ErrInvalid)
		}
		f.init(V(width, height), depth, make([]byte, width*height/8), nil)
	case Depth16:
		f.init(V(width, height), depth, nil, make([]Color, width*height))
	default:
		return nil, fmt.Errorf("display: depth %d: %w", depth, ErrInvalid)
	}
	return f, nil
}

func (f *Frame) init(size Vector, depth Depth, bits []byte, pix []Color) {
	*f = Frame{
		size:   size,
		depth:  depth,
		packed: depth == Depth1,
		bits:   bits,
		pix:    pix,
	}
}

func (f *Frame) Size() Vector  { return f.size }
func (f *Frame) Width() int32  { return f.size.X }
func (f *Frame) Height() int32 { return f.size.Y }
func (f *Frame) Depth() Depth  { return f.depth }

// Packed reports whether the frame uses the 1-bit paged layout.
func (f *Frame) Packed() bool { return f.packed }

// Bytes returns the packed buffer, or nil for a direct frame.
func (f *Frame) Bytes() []byte { return f.bits }

// Colors returns the direct buffer, or nil for a packed frame.
func (f *Frame) Colors() []Color { return f.pix }

// BufferLen is the size of the pixel buffer in bytes.
func (f *Frame) BufferLen() int {
	return int(f.size.X*f.size.Y) * int(f.depth) / 8
}

// Contains reports whether p lies inside the frame.
func (f *Frame) Contains(p Vector) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < f.size.X && p.Y < f.size.Y
}

// SetPixel writes c at p. Writes outside the frame are rejected and leave the
// buffer untouched. On a packed frame any non-zero colour sets the bit.
func (f *Frame) SetPixel(p Vector, c Color) error {
	if f == nil {
		return ErrInvalid
	}
	if !f.Contains(p) {
		return ErrOutOfBounds
	}
	if f.packed {
		i := (p.X*f.size.Y + p.Y) / 8
		mask := byte(1) << uint(p.Y%8)
		if c != 0 {
			f.bits[i] |= mask
		} else {
			f.bits[i] &^= mask
		}
		return nil
	}
	f.pix[p.Y*f.size.X+p.X] = c
	return nil
}

// Pixel reads back p. Packed frames report White for a set bit and Black
// otherwise.
func (f *Frame) Pixel(p Vector) (Color, error) {
	if f == nil {
		return 0, ErrInvalid
	}
	if !f.Contains(p) {
		return 0, ErrOutOfBounds
	}
	if f.packed {
		i := (p.X*f.size.Y + p.Y) / 8
		if f.bits[i]&(1<<uint(p.Y%8)) != 0 {
			return White, nil
		}
		return Black, nil
	}
	return f.pix[p.Y*f.size.X+p.X], nil
}

// Fill writes c to every pixel through SetPixel.
func (f *Frame) Fill(c Color) error {
	var p Vector
	for p.Y = 0; p.Y < f.size.Y; p.Y++ {
		for p.X = 0; p.X < f.size.X; p.X++ {
			if err := f.SetPixel(p, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clear sets every byte of the buffer to 0xFF.
func (f *Frame) Clear() {
	for i := range f.bits {
		f.bits[i] = 0xFF
	}
	for i := range f.pix {
		f.pix[i] = 0xFFFF
	}
}

// RotateUp moves every row up by n, wrapping the top rows to the bottom.
// col is scratch space for one column and must hold Height() colours.
func (f *Frame) RotateUp(n int32, col []Color) error {
	if f == nil {
		return ErrInvalid
	}
	h := f.size.Y
	if int32(len(col)) < h {
		return ErrInvalid
	}
	if h == 0 {
		return nil
	}
	n %= h
	if n < 0 {
		n += h
	}
	if n == 0 {
		return nil
	}
	var p Vector
	for p.X = 0; p.X < f.size.X; p.X++ {
		for p.Y = 0; p.Y < h; p.Y++ {
			c, err := f.Pixel(p)
			if err != nil {
				return err
			}
			col[p.Y] = c
		}
		for p.Y = 0; p.Y < h; p.Y++ {
			if err := f.SetPixel(p, col[(p.Y+n)%h]); err != nil {
				return err
			}
		}
	}
	return nil
}
