//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/drivers/ssd1331"

	"rtcore/display"
)

const (
	ssd1306Addr     = 0x3C
	ssd1306Vertical = 0x01
)

// tinyGoPanels owns one I2C and one SPI bus. Every display unit maps onto
// them; a second panel of the same kind shares the bus.
type tinyGoPanels struct {
	i2c    *machine.I2C
	i2cErr error
	spi    *machine.SPI
	spiErr error

	dc, rst, cs machine.Pin
}

func (p *tinyGoPanels) Open(kind display.PanelKind, unit display.Unit) (display.Backend, error) {
	switch kind {
	case display.SSD1306I2C:
		if p.i2cErr != nil {
			return nil, fmt.Errorf("hal: i2c for %s: %w", unit, p.i2cErr)
		}
		// send "display off" first so a missing panel fails here
		if err := p.i2c.Tx(ssd1306Addr, []byte{0x00, 0xAE}, nil); err != nil {
			return nil, fmt.Errorf("hal: ssd1306 at %#x: %w", ssd1306Addr, err)
		}
		dev := ssd1306.NewI2C(p.i2c)
		dev.Configure(ssd1306.Config{
			Width:    128,
			Height:   64,
			Address:  ssd1306Addr,
			VccState: ssd1306.SWITCHCAPVCC,
		})
		// frames are packed column by column
		dev.Command(ssd1306.MEMORYMODE)
		dev.Command(ssd1306Vertical)
		return &ssd1306Panel{dev: dev}, nil

	case display.SSD1331SPI:
		if p.spiErr != nil {
			return nil, fmt.Errorf("hal: spi for %s: %w", unit, p.spiErr)
		}
		dev := ssd1331.New(p.spi, p.rst, p.dc, p.cs)
		dev.Configure(ssd1331.Config{Width: 96, Height: 64})
		return &ssd1331Panel{dev: dev, buf: make([]color.RGBA, 96*64)}, nil

	default:
		return nil, fmt.Errorf("hal: panel %s: %w", kind, ErrNotImplemented)
	}
}

type ssd1306Panel struct {
	dev *ssd1306.Device
}

func (p *ssd1306Panel) Flush(f *display.Frame) error {
	if err := p.dev.SetBuffer(f.Bytes()); err != nil {
		return err
	}
	return p.dev.Display()
}

func (p *ssd1306Panel) Close() error { return p.dev.Sleep(true) }

type ssd1331Panel struct {
	dev ssd1331.Device
	buf []color.RGBA
}

func (p *ssd1331Panel) Flush(f *display.Frame) error {
	px := f.Colors()
	if len(px) != len(p.buf) {
		return fmt.Errorf("hal: ssd1331: frame %dx%d: %w", f.Width(), f.Height(), display.ErrInvalid)
	}
	for i, c := range px {
		p.buf[i] = c.ToRGBA()
	}
	return p.dev.FillRectangleWithBuffer(0, 0, 96, 64, p.buf)
}

func (p *ssd1331Panel) Close() error {
	p.dev.Command(ssd1331.DISPLAYOFF)
	return nil
}
