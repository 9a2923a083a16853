//go:build !tinygo && linux

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"rtcore/display"
)

// periphPanels drives SSD1306 panels on a Linux I2C bus. The bus is chosen
// by name when the driver is created; the display unit is informational.
type periphPanels struct {
	bus i2c.BusCloser
}

func newPeriphPanels(busName string) (periphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hal: periph init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("hal: open i2c %q: %w", busName, err)
	}
	return &periphPanels{bus: bus}, nil
}

func (p *periphPanels) Open(kind display.PanelKind, unit display.Unit) (display.Backend, error) {
	if kind != display.SSD1306I2C {
		return nil, fmt.Errorf("hal: %s on %s over periph: %w", kind, unit, ErrNotImplemented)
	}
	size, _, _ := kind.Geometry()
	opts := ssd1306.DefaultOpts
	opts.W, opts.H = int(size.X), int(size.Y)
	dev, err := ssd1306.NewI2C(p.bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("hal: ssd1306 on %s: %w", unit, err)
	}
	return &periphSSD1306{dev: dev, w: opts.W, h: opts.H, buf: make([]byte, opts.W*opts.H/8)}, nil
}

func (p *periphPanels) Close() error { return p.bus.Close() }

type periphSSD1306 struct {
	dev  *ssd1306.Dev
	w, h int
	buf  []byte
}

func (s *periphSSD1306) Flush(f *display.Frame) error {
	if !f.Packed() || int(f.Width()) != s.w || int(f.Height()) != s.h {
		return fmt.Errorf("hal: ssd1306: frame %dx%d: %w", f.Width(), f.Height(), display.ErrInvalid)
	}
	columnToPages(s.buf, f.Bytes(), s.w, s.h)
	_, err := s.dev.Write(s.buf)
	return err
}

func (s *periphSSD1306) Close() error { return s.dev.Halt() }
