//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"rtcore/display"
	"rtcore/internal/snapshot"
)

// memPanels is the host panel driver: each open panel keeps an RGBA copy
// of the last flushed frame for the window, and optionally a PNG per flush.
type memPanels struct {
	mu     sync.Mutex
	logger Logger
	dir    string
	scale  int
	open   []*memPanel
}

func newMemPanels(logger Logger, dir string, scale int) *memPanels {
	return &memPanels{logger: logger, dir: dir, scale: scale}
}

func (m *memPanels) Open(kind display.PanelKind, unit display.Unit) (display.Backend, error) {
	size, _, ok := kind.Geometry()
	if !ok {
		return nil, fmt.Errorf("hal: panel %s: %w", kind, ErrNotImplemented)
	}
	p := &memPanel{
		owner: m,
		name:  strings.ReplaceAll(kind.String(), "/", "-") + "-" + unit.String(),
		img:   image.NewRGBA(image.Rect(0, 0, int(size.X), int(size.Y))),
	}
	m.mu.Lock()
	m.open = append(m.open, p)
	m.mu.Unlock()
	return p, nil
}

// images returns copies of the open panels' last frames, in open order.
func (m *memPanels) images() []*image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*image.RGBA, 0, len(m.open))
	for _, p := range m.open {
		cp := *p.img
		cp.Pix = append([]byte(nil), p.img.Pix...)
		out = append(out, &cp)
	}
	return out
}

type memPanel struct {
	owner   *memPanels
	name    string
	img     *image.RGBA
	flushes int
	closed  bool
}

func (p *memPanel) Flush(f *display.Frame) error {
	m := p.owner
	m.mu.Lock()
	if p.closed {
		m.mu.Unlock()
		return display.ErrClosed
	}
	var pt display.Vector
	for pt.Y = 0; pt.Y < f.Height(); pt.Y++ {
		for pt.X = 0; pt.X < f.Width(); pt.X++ {
			c, err := f.Pixel(pt)
			if err != nil {
				m.mu.Unlock()
				return err
			}
			p.img.SetRGBA(int(pt.X), int(pt.Y), c.ToRGBA())
		}
	}
	p.flushes++
	n := p.flushes
	m.mu.Unlock()

	if m.dir == "" {
		return nil
	}
	path := filepath.Join(m.dir, fmt.Sprintf("%s-%04d.png", p.name, n))
	if err := snapshot.SavePNG(path, f, m.scale); err != nil {
		return fmt.Errorf("hal: snapshot %s: %w", p.name, err)
	}
	return nil
}

func (p *memPanel) Close() error {
	m := p.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.closed {
		return display.ErrClosed
	}
	p.closed = true
	for i, q := range m.open {
		if q == p {
			m.open = append(m.open[:i], m.open[i+1:]...)
			break
		}
	}
	return nil
}

// teePanels opens every panel on a hardware driver and mirrors it into
// the in-memory panels so the window and snapshots keep working.
type teePanels struct {
	primary display.Driver
	mirror  display.Driver
}

func (t *teePanels) Open(kind display.PanelKind, unit display.Unit) (display.Backend, error) {
	hw, err := t.primary.Open(kind, unit)
	if err != nil {
		return nil, err
	}
	mem, err := t.mirror.Open(kind, unit)
	if err != nil {
		hw.Close()
		return nil, err
	}
	return &teeBackend{hw: hw, mem: mem}, nil
}

type teeBackend struct {
	hw, mem display.Backend
}

func (b *teeBackend) Flush(f *display.Frame) error {
	err := b.hw.Flush(f)
	if merr := b.mem.Flush(f); err == nil {
		err = merr
	}
	return err
}

func (b *teeBackend) Close() error {
	err := b.hw.Close()
	if merr := b.mem.Close(); err == nil {
		err = merr
	}
	return err
}
