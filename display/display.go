package display

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
)

// Display is one open panel: a frame, its backend and a draw list.
type Display struct {
	ctx        *Context
	open       bool
	kind       PanelKind
	unit       Unit
	backend    Backend
	background Color

	frame Frame
	mono  [monoFrameBytes]byte
	color [colorFramePixels]Color

	head, tail int16
	count      int

	scroll int32 // first frame row shown at the top of the panel
	column [maxFrameHeight]Color
}

func (d *Display) Kind() PanelKind   { return d.kind }
func (d *Display) Unit() Unit        { return d.unit }
func (d *Display) IsOpen() bool      { return d != nil && d.open }
func (d *Display) Background() Color { return d.background }

// Frame returns the display's frame buffer.
func (d *Display) Frame() *Frame { return &d.frame }

// Len returns the number of primitives on the draw list.
func (d *Display) Len() int { return d.count }

// Close frees the display's primitives and closes the backend. The bus
// itself is not reset.
func (d *Display) Close() error {
	if !d.IsOpen() {
		return ErrClosed
	}
	c := d.ctx
	for i := d.head; i != none; {
		next := c.prims[i].next
		c.release(i)
		i = next
	}
	d.head, d.tail, d.count = none, none, 0
	d.open = false

	be := d.backend
	d.backend = nil
	if be == nil {
		return nil
	}
	if err := be.Close(); err != nil {
		return fmt.Errorf("display: close %s: %w", d.kind, err)
	}
	return nil
}

// Add allocates a primitive and appends it to the draw list.
func (d *Display) Add(shape Shape, style Style) (PrimitiveID, error) {
	if !d.IsOpen() {
		return 0, ErrClosed
	}
	c := d.ctx
	idx, id, err := c.alloc(d, Primitive{Shape: shape, Style: style})
	if err != nil {
		return 0, err
	}
	if d.tail == none {
		d.head = idx
	} else {
		c.prims[d.tail].next = idx
	}
	d.tail = idx
	d.count++
	return id, nil
}

// Free removes a primitive from the draw list and returns its slot. The
// primitive's children are detached but stay allocated.
func (d *Display) Free(id PrimitiveID) error {
	if !d.IsOpen() {
		return ErrClosed
	}
	c := d.ctx
	idx, s, err := c.lookup(id)
	if err != nil {
		return err
	}
	if s.owner != d {
		return fmt.Errorf("display: primitive %#x belongs to another display: %w", uint32(id), ErrInvalid)
	}

	prev := none
	for i := d.head; i != idx; i = c.prims[i].next {
		prev = i
	}
	if prev == none {
		d.head = s.next
	} else {
		c.prims[prev].next = s.next
	}
	if d.tail == idx {
		d.tail = prev
	}
	d.count--
	c.release(idx)
	return nil
}

// Primitive returns the pooled primitive for id. The pointer stays valid
// until id is freed.
func (d *Display) Primitive(id PrimitiveID) (*Primitive, error) {
	if !d.IsOpen() {
		return nil, ErrClosed
	}
	_, s, err := d.ctx.lookup(id)
	if err != nil {
		return nil, err
	}
	if s.owner != d {
		return nil, fmt.Errorf("display: primitive %#x belongs to another display: %w", uint32(id), ErrInvalid)
	}
	return &s.prim, nil
}

// IDs appends the draw list to dst in draw order.
func (d *Display) IDs(dst []PrimitiveID) []PrimitiveID {
	if !d.IsOpen() {
		return dst
	}
	c := d.ctx
	for i := d.head; i != none; i = c.prims[i].next {
		dst = append(dst, makeID(i, c.prims[i].gen))
	}
	return dst
}

// Draw rasterizes every primitive in insertion order, then flushes the
// whole frame to the backend. A failing primitive does not stop the pass.
func (d *Display) Draw() error {
	if !d.IsOpen() {
		return ErrClosed
	}
	c := d.ctx
	var first error
	for i := d.head; i != none; i = c.prims[i].next {
		p := &c.prims[i].prim
		if err := p.Draw(&d.frame); err != nil && first == nil {
			first = fmt.Errorf("display: draw %s: %w", p.Shape.kind, err)
		}
	}
	if err := d.flush(); err != nil {
		return err
	}
	return first
}

func (d *Display) flush() error {
	if d.scroll == 0 {
		return d.flushFrame()
	}
	if err := d.frame.RotateUp(d.scroll, d.column[:]); err != nil {
		return fmt.Errorf("display: scroll %s: %w", d.kind, err)
	}
	err := d.flushFrame()
	if rerr := d.frame.RotateUp(-d.scroll, d.column[:]); rerr != nil && err == nil {
		err = fmt.Errorf("display: scroll %s: %w", d.kind, rerr)
	}
	return err
}

func (d *Display) flushFrame() error {
	if err := d.backend.Flush(&d.frame); err != nil {
		return fmt.Errorf("display: flush %s on %s: %w", d.kind, d.unit, err)
	}
	return nil
}

// Clear resets the raw buffer to all-set. On an inverted 1-bit panel that
// is "all off".
func (d *Display) Clear() error {
	if !d.IsOpen() {
		return ErrClosed
	}
	d.frame.Clear()
	return nil
}

// SetBackground writes c to every pixel. A 1-bit panel stores Black as a
// cleared bit and any other colour as a set bit.
func (d *Display) SetBackground(c Color) error {
	if !d.IsOpen() {
		return ErrClosed
	}
	if err := d.frame.Fill(c); err != nil {
		return err
	}
	d.background = c
	return nil
}

// drivers.Displayer and the tinyterm additions, so tinyfont and tinyterm
// can render straight into the frame.

func (d *Display) Size() (x, y int16) {
	return int16(d.frame.size.X), int16(d.frame.size.Y)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	_ = d.frame.SetPixel(V(int32(x), int32(y)), FromRGBA(c))
}

// Display flushes the frame without rasterizing the draw list.
func (d *Display) Display() error {
	if !d.IsOpen() {
		return ErrClosed
	}
	return d.flush()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return ErrInvalid
	}
	col := FromRGBA(c)
	var err error
	for py := int32(y); py < int32(y)+int32(height); py++ {
		for px := int32(x); px < int32(x)+int32(width); px++ {
			if e := d.frame.SetPixel(V(px, py), col); e != nil && err == nil {
				err = e
			}
		}
	}
	return err
}

// SetScroll makes frame row line the top row of the next flush, the way a
// panel's vertical scroll register does.
func (d *Display) SetScroll(line int16) {
	if h := d.frame.size.Y; h > 0 {
		d.scroll = ((int32(line) % h) + h) % h
	}
}

func (d *Display) SetRotation(r drivers.Rotation) error {
	if r != drivers.Rotation0 {
		return fmt.Errorf("display: rotation %d: %w", r, ErrInvalid)
	}
	return nil
}
