package display

import (
	"errors"
	"fmt"
)

const (
	// MaxDisplays is the number of displays one Context can hold open.
	MaxDisplays = 2
	// MaxPrimitives is the primitive pool shared by a Context's displays.
	MaxPrimitives = 512
)

var (
	ErrExhausted   = errors.New("display: pool exhausted")
	ErrBackendInit = errors.New("display: backend init failed")
	ErrClosed      = errors.New("display: closed")
	ErrStale       = errors.New("display: stale primitive handle")
)

// PanelKind selects a panel and the bus it is attached to.
type PanelKind uint8

const (
	SSD1306I2C PanelKind = iota // 128x64 monochrome OLED over I2C
	SSD1331SPI                  // 96x64 RGB565 OLED over SPI
	panelKindCount
)

func (k PanelKind) String() string {
	switch k {
	case SSD1306I2C:
		return "ssd1306/i2c"
	case SSD1331SPI:
		return "ssd1331/spi"
	default:
		return fmt.Sprintf("PanelKind(%d)", uint8(k))
	}
}

// Geometry returns the frame size and depth a panel kind needs.
func (k PanelKind) Geometry() (size Vector, depth Depth, ok bool) {
	switch k {
	case SSD1306I2C:
		return V(128, 64), Depth1, true
	case SSD1331SPI:
		return V(96, 64), Depth16, true
	default:
		return Vector{}, 0, false
	}
}

const (
	monoFrameBytes   = 128 * 64 / 8
	colorFramePixels = 96 * 64
	maxFrameHeight   = 64
)

// Unit is the serial interface block a panel's bus runs on.
type Unit uint8

const (
	ISU0 Unit = iota
	ISU1
	ISU2
	ISU3
	ISU4
	ISU5
)

func (u Unit) String() string { return fmt.Sprintf("ISU%d", uint8(u)) }

// Backend is an open panel. Flush sends a complete frame to the hardware.
type Backend interface {
	Flush(f *Frame) error
	Close() error
}

// Driver opens panel backends. It owns bus bring-up and the panel command set.
type Driver interface {
	Open(kind PanelKind, unit Unit) (Backend, error)
}

// PrimitiveID is a handle to a pooled primitive. The zero value is never valid.
type PrimitiveID uint32

const none = int16(-1)

func makeID(idx int16, gen uint16) PrimitiveID {
	return PrimitiveID(uint32(gen)<<16 | uint32(uint16(idx)))
}

func (id PrimitiveID) index() int16 { return int16(uint16(id)) }
func (id PrimitiveID) gen() uint16  { return uint16(id >> 16) }

type primitiveSlot struct {
	prim  Primitive
	used  bool
	gen   uint16
	owner *Display

	next    int16 // draw list
	parent  int16
	child   int16 // first child
	sibling int16 // next child of parent
}

// Context owns the display and primitive pools. Contexts are independent of
// each other; one Context is not safe for concurrent use.
type Context struct {
	drv      Driver
	displays [MaxDisplays]Display
	prims    [MaxPrimitives]primitiveSlot
	inUse    int
}

// NewContext returns a context that opens panels through drv.
func NewContext(drv Driver) *Context {
	c := &Context{drv: drv}
	for i := range c.prims {
		c.prims[i].reset()
	}
	return c
}

func (s *primitiveSlot) reset() {
	s.prim = Primitive{}
	s.used = false
	s.owner = nil
	s.next, s.parent, s.child, s.sibling = none, none, none, none
}

// Available returns the number of free primitive slots.
func (c *Context) Available() int { return MaxPrimitives - c.inUse }

// Open claims a display slot and brings up the panel. The frame starts
// cleared and the background black.
func (c *Context) Open(kind PanelKind, unit Unit) (*Display, error) {
	size, depth, ok := kind.Geometry()
	if !ok {
		return nil, fmt.Errorf("display: open %s: %w", kind, ErrInvalid)
	}
	if unit > ISU5 {
		return nil, fmt.Errorf("display: open %s on %s: %w", kind, unit, ErrInvalid)
	}

	var d *Display
	for i := range c.displays {
		if !c.displays[i].open {
			d = &c.displays[i]
			break
		}
	}
	if d == nil {
		return nil, fmt.Errorf("display: open %s: no free display: %w", kind, ErrExhausted)
	}
	if c.drv == nil {
		return nil, fmt.Errorf("display: open %s: no driver: %w", kind, ErrBackendInit)
	}

	be, err := c.drv.Open(kind, unit)
	if err != nil {
		return nil, fmt.Errorf("display: open %s on %s: %w: %w", kind, unit, ErrBackendInit, err)
	}
	if be == nil {
		return nil, fmt.Errorf("display: open %s on %s: nil backend: %w", kind, unit, ErrBackendInit)
	}

	d.ctx = c
	d.open = true
	d.kind = kind
	d.unit = unit
	d.backend = be
	d.background = Black
	d.head, d.tail, d.count = none, none, 0
	d.scroll = 0
	switch depth {
	case Depth1:
		d.frame.init(size, depth, d.mono[:size.X*size.Y/8], nil)
	case Depth16:
		d.frame.init(size, depth, nil, d.color[:size.X*size.Y])
	}
	d.frame.Clear()
	return d, nil
}

func (c *Context) lookup(id PrimitiveID) (int16, *primitiveSlot, error) {
	idx := id.index()
	if idx < 0 || int(idx) >= MaxPrimitives {
		return none, nil, fmt.Errorf("display: primitive %#x: %w", uint32(id), ErrStale)
	}
	s := &c.prims[idx]
	if !s.used || s.gen != id.gen() {
		return none, nil, fmt.Errorf("display: primitive %#x: %w", uint32(id), ErrStale)
	}
	return idx, s, nil
}

func (c *Context) alloc(owner *Display, p Primitive) (int16, PrimitiveID, error) {
	for i := range c.prims {
		s := &c.prims[i]
		if s.used {
			continue
		}
		s.reset()
		s.used = true
		s.gen++
		if s.gen == 0 {
			s.gen = 1
		}
		s.owner = owner
		s.prim = p
		c.inUse++
		return int16(i), makeID(int16(i), s.gen), nil
	}
	return none, 0, fmt.Errorf("display: %d primitives in use: %w", c.inUse, ErrExhausted)
}

func (c *Context) release(idx int16) {
	s := &c.prims[idx]

	for ch := s.child; ch != none; {
		next := c.prims[ch].sibling
		c.prims[ch].parent = none
		c.prims[ch].sibling = none
		ch = next
	}
	if s.parent != none {
		c.unlinkChild(s.parent, idx)
	}

	gen := s.gen
	s.reset()
	s.gen = gen
	c.inUse--
}

func (c *Context) unlinkChild(parent, child int16) bool {
	p := &c.prims[parent]
	if p.child == child {
		p.child = c.prims[child].sibling
	} else {
		prev := p.child
		for prev != none && c.prims[prev].sibling != child {
			prev = c.prims[prev].sibling
		}
		if prev == none {
			return false
		}
		c.prims[prev].sibling = c.prims[child].sibling
	}
	c.prims[child].parent = none
	c.prims[child].sibling = none
	return true
}

// AddChild appends child to parent's child list. A primitive has at most
// one parent and a child list may not loop back to its parent. Children
// are not drawn through their parent.
func (c *Context) AddChild(parent, child PrimitiveID) error {
	pi, ps, err := c.lookup(parent)
	if err != nil {
		return err
	}
	ci, cs, err := c.lookup(child)
	if err != nil {
		return err
	}
	if pi == ci || cs.parent != none {
		return fmt.Errorf("display: add child %#x to %#x: %w", uint32(child), uint32(parent), ErrInvalid)
	}
	for a := ps.parent; a != none; a = c.prims[a].parent {
		if a == ci {
			return fmt.Errorf("display: add child %#x to %#x: cycle: %w", uint32(child), uint32(parent), ErrInvalid)
		}
	}

	if ps.child == none {
		ps.child = ci
	} else {
		last := ps.child
		for c.prims[last].sibling != none {
			last = c.prims[last].sibling
		}
		c.prims[last].sibling = ci
	}
	cs.parent = pi
	return nil
}

// RemoveChild detaches child from parent's child list.
func (c *Context) RemoveChild(parent, child PrimitiveID) error {
	pi, _, err := c.lookup(parent)
	if err != nil {
		return err
	}
	ci, cs, err := c.lookup(child)
	if err != nil {
		return err
	}
	if cs.parent != pi || !c.unlinkChild(pi, ci) {
		return fmt.Errorf("display: %#x is not a child of %#x: %w", uint32(child), uint32(parent), ErrInvalid)
	}
	return nil
}

// Children appends parent's children to dst in insertion order.
func (c *Context) Children(parent PrimitiveID, dst []PrimitiveID) ([]PrimitiveID, error) {
	_, ps, err := c.lookup(parent)
	if err != nil {
		return dst, err
	}
	for ch := ps.child; ch != none; ch = c.prims[ch].sibling {
		dst = append(dst, makeID(ch, c.prims[ch].gen))
	}
	return dst, nil
}

// Parent returns the primitive's parent, if any.
func (c *Context) Parent(id PrimitiveID) (PrimitiveID, bool, error) {
	_, s, err := c.lookup(id)
	if err != nil {
		return 0, false, err
	}
	if s.parent == none {
		return 0, false, nil
	}
	return makeID(s.parent, c.prims[s.parent].gen), true, nil
}
