package app

import (
	"fmt"

	"rtcore/display"
)

// Demo names one of the sample applications.
type Demo string

const (
	DemoShapes   Demo = "shapes"
	DemoJoystick Demo = "joystick"
	DemoGPIO     Demo = "gpio"
	DemoADC      Demo = "adc"
	DemoEINT     Demo = "eint"
)

// ParseDemo maps a flag value to a Demo.
func ParseDemo(s string) (Demo, error) {
	switch d := Demo(s); d {
	case DemoShapes, DemoJoystick, DemoGPIO, DemoADC, DemoEINT:
		return d, nil
	default:
		return "", fmt.Errorf("app: unknown demo %q", s)
	}
}

// Panel selects a panel and the bus unit it sits on.
type Panel struct {
	Kind display.PanelKind
	Unit display.Unit
}

// Config selects a demo and its wiring. Zero fields take the reference
// board's values.
type Config struct {
	Demo Demo

	// Panels the demo draws on. Shapes uses all of them; the joystick
	// crosshair and the gpio console use the first.
	Panels []Panel

	// ButtonPollMs is the GPT period that samples the buttons.
	ButtonPollMs uint32

	// Crosshair draws the joystick reading on the first panel.
	Crosshair bool
	// Console mirrors the gpio demo's log onto the first panel.
	Console bool

	// GPIO demo wiring: four active-low LEDs, and three outputs jumpered
	// to three inputs.
	LEDPins  [4]int
	CountOut [3]int
	CountIn  [3]int
}

func (c *Config) applyDefaults() {
	if c.Demo == "" {
		c.Demo = DemoShapes
	}
	if len(c.Panels) == 0 {
		c.Panels = []Panel{{Kind: display.SSD1306I2C, Unit: display.ISU1}}
	}
	if c.ButtonPollMs == 0 {
		c.ButtonPollMs = 10
		if c.Demo == DemoShapes {
			c.ButtonPollMs = 100
		}
	}
	if c.LEDPins == [4]int{} {
		c.LEDPins = [4]int{45, 46, 47, 48}
	}
	if c.CountOut == [3]int{} {
		c.CountOut = [3]int{60, 28, 31}
	}
	if c.CountIn == [3]int{} {
		c.CountIn = [3]int{70, 66, 44}
	}
}
