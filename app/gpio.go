package app

import (
	"fmt"

	"tinygo.org/x/tinyterm"

	"rtcore/display"
	"rtcore/hal"
)

// blinky cycles one lit LED across the four LEDs with button A and counts
// on three outputs that are read back through three jumpered inputs.
type blinky struct {
	s      *system
	leds   [4]hal.GPIOPin
	outs   [3]hal.GPIOPin
	ins    [3]hal.GPIOPin
	off    [4]bool // electrical level; LEDs are active low
	active int
	count  uint8

	term  *tinyterm.Terminal
	panel *display.Display
}

func startGPIO(s *system) *blinky {
	s.banner("GPIO_ADC_RTApp_MT3620_BareMetal")
	s.logf("Press A to cycle LED state (cycles R-G-B(Play LED)-R(Wifi LED))")

	demo := &blinky{s: s, off: [4]bool{false, true, true, true}}
	gpio := s.h.GPIO()
	configure := func(id int, mode hal.GPIOMode) hal.GPIOPin {
		if gpio == nil {
			return nil
		}
		pin := gpio.Pin(id)
		if pin == nil {
			s.logf("ERROR: GPIO %d not available", id)
			return nil
		}
		if err := pin.Configure(mode, hal.GPIOPullNone); err != nil {
			s.logf("ERROR: %v", err)
			return nil
		}
		return pin
	}
	for i, id := range s.cfg.CountIn {
		demo.ins[i] = configure(id, hal.GPIOModeInput)
	}
	for i, id := range s.cfg.LEDPins {
		demo.leds[i] = configure(id, hal.GPIOModeOutput)
	}
	for i, id := range s.cfg.CountOut {
		demo.outs[i] = configure(id, hal.GPIOModeOutput)
	}

	if s.cfg.Console {
		demo.openConsole()
	}
	demo.updateLEDs()

	b, err := newButtons(gpio, s.q, []int{hal.PinButtonA}, []func(){demo.press})
	if err != nil {
		s.logf("ERROR: buttons: %v", err)
		return demo
	}
	s.pollButtons(b)
	return demo
}

func (demo *blinky) press() {
	demo.off[demo.active] = true
	demo.active = (demo.active + 1) % len(demo.leds)
	demo.off[demo.active] = false
	demo.updateLEDs()
	demo.updateCount()
}

func (demo *blinky) updateLEDs() {
	for i, pin := range demo.leds {
		if pin != nil {
			pin.Write(demo.off[i])
		}
	}
}

func (demo *blinky) updateCount() {
	for i, pin := range demo.outs {
		if pin != nil {
			pin.Write(demo.count>>i&1 != 0)
		}
	}
	var read uint8
	for i, pin := range demo.ins {
		if pin == nil {
			continue
		}
		if level, err := pin.Read(); err == nil && level {
			read |= 1 << i
		}
	}
	demo.println(fmt.Sprintf("count: %d, countRead: %d", demo.count, read))
	demo.count = (demo.count + 1) % 8
}

// println logs a line and mirrors it to the panel console.
func (demo *blinky) println(line string) {
	demo.s.log.WriteLineString(line)
	if demo.term == nil {
		return
	}
	fmt.Fprintf(demo.term, "%s\n", line)
	if err := demo.panel.Display(); err != nil {
		demo.s.log.WriteLineString(fmt.Sprintf("Drawing %s: %v", demo.panel.Kind(), err))
	}
}

func (demo *blinky) openConsole() {
	d := demo.s.openPanel(demo.s.cfg.Panels[0])
	if d == nil {
		return
	}
	d.SetBackground(display.Black)
	demo.panel = d
	demo.term = tinyterm.NewTerminal(d)
	demo.term.Configure(&tinyterm.Config{
		Font:       display.Font,
		FontHeight: 10,
		FontOffset: 8,
	})
}
