//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"

	"rtcore/kernel"
)

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(kernel.TickPeriod)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin is a board GPIO. Reads and writes go straight to the pad.
type machinePin struct {
	pin    machine.Pin
	name   string
	mode   GPIOMode
	change machine.PinChange
}

func (p *machinePin) Name() string { return p.name }
func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.Caps(), mode, pull); err != nil {
		return err
	}
	cfg := machine.PinConfig{Mode: machine.PinOutput}
	if mode == GPIOModeInput {
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.pin.Set(level)
	return nil
}

// SetInterrupt arms the pad's edge interrupt. The RP2350 has no input
// debounce filter, so Debounce is applied in the handler.
func (p *machinePin) SetInterrupt(cfg InterruptConfig, fn func()) error {
	if p.change != 0 {
		if err := p.pin.SetInterrupt(p.change, nil); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
		p.change = 0
	}
	if fn == nil {
		return nil
	}
	if err := checkInterrupt(p.name, cfg); err != nil {
		return err
	}

	change := machine.PinToggle
	switch cfg.Edge {
	case EdgeFalling:
		change = machine.PinFalling
	case EdgeRising:
		change = machine.PinRising
	}
	debounce := cfg.Debounce
	var last time.Time
	fired := false
	err := p.pin.SetInterrupt(change, func(machine.Pin) {
		now := time.Now()
		if fired && now.Sub(last) < debounce {
			return
		}
		fired, last = true, now
		fn()
	})
	if err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}
	p.change = change
	return nil
}

// newMachineGPIO exposes GP0..count-1; the on-board LED pin goes through led.
func newMachineGPIO(count int, ledPin machine.Pin, led LED) GPIO {
	overrides := make(map[int]GPIOPin, count)
	for i := 0; i < count; i++ {
		pin := machine.Pin(i)
		if pin == ledPin {
			overrides[i] = newLEDPin("LED", led)
			continue
		}
		overrides[i] = &machinePin{pin: pin, name: fmt.Sprintf("GP%d", i)}
	}
	return newPinBank(count, overrides)
}

// machineADC samples the joystick channels on demand, scaled to 12 bits.
type machineADC struct {
	chans []machine.ADC
	buf   []ADCSample
}

func newMachineADC(pins ...machine.Pin) *machineADC {
	machine.InitADC()
	a := &machineADC{buf: make([]ADCSample, len(pins))}
	for _, pin := range pins {
		c := machine.ADC{Pin: pin}
		c.Configure(machine.ADCConfig{})
		a.chans = append(a.chans, c)
	}
	return a
}

func (a *machineADC) Samples() []ADCSample {
	for i, c := range a.chans {
		a.buf[i] = ADCSample{Channel: uint16(i), Value: uint32(c.Get() >> 4)}
	}
	return a.buf
}
