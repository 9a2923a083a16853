package app

import (
	"errors"
	"fmt"

	"rtcore/display"
	"rtcore/hal"
	"rtcore/joystick"
)

const (
	joystickChannelX = 0
	joystickChannelY = 1
)

// adcSampler adapts the HAL's ADC to the joystick's sample source.
type adcSampler struct {
	adc hal.ADC
	buf []joystick.Sample
}

func (a *adcSampler) Samples() []joystick.Sample {
	a.buf = a.buf[:0]
	if a.adc == nil {
		return a.buf
	}
	for _, s := range a.adc.Samples() {
		a.buf = append(a.buf, joystick.Sample{Channel: s.Channel, Value: s.Value})
	}
	return a.buf
}

// stick walks the operator through the calibration phases with button A,
// then prints a reading on every press.
type stick struct {
	s     *system
	pool  *joystick.Pool
	js    *joystick.Joystick
	phase int // index into joystick.Phases; len(Phases) is the data phase

	panel      *display.Display
	dot, label display.PrimitiveID
}

func startJoystick(s *system) *stick {
	s.banner("ADC_RTApp_MT3620_BareMetal")

	demo := &stick{s: s, pool: joystick.NewPool()}
	js, err := demo.pool.Open(&adcSampler{adc: s.h.ADC()}, joystickChannelX, joystickChannelY)
	if err != nil {
		s.logf("Error: Failed to initialize joystick")
		return demo
	}
	demo.js = js

	if s.cfg.Crosshair {
		demo.openCrosshair()
	}

	b, err := newButtons(s.h.GPIO(), s.q, []int{hal.PinButtonA}, []func(){demo.press})
	if err != nil {
		s.logf("ERROR: buttons: %v", err)
		return demo
	}
	s.pollButtons(b)

	s.logf("The joystick needs to be calibrated before use.")
	demo.prompt()
	return demo
}

func (demo *stick) calibrated() bool { return demo.phase >= len(joystick.Phases) }

func (demo *stick) prompt() {
	demo.s.logf("%s When ready press the A button.", joystick.Phases[demo.phase].Prompt())
}

func (demo *stick) press() {
	s := demo.s
	if demo.js == nil {
		return
	}
	if demo.calibrated() {
		xy, err := demo.js.XY()
		if err != nil {
			s.logf("Error: %v", err)
			return
		}
		s.logf("Joystick V_x = %d%% Joystick V_y = %d%%", xy.X, xy.Y)
		demo.drawCrosshair(xy)
		return
	}

	err := demo.js.Calibrate(joystick.Phases[demo.phase])
	switch {
	case errors.Is(err, joystick.ErrCalibration):
		s.logf("Error: The joystick value was not as expected, please try again.")
		return
	case errors.Is(err, joystick.ErrNotADirection):
		s.logf("Error: The direction passed to Joystick_Cal is not a supported value.")
		return
	case err != nil:
		s.logf("Error: %v", err)
		return
	}

	demo.phase++
	if demo.calibrated() {
		s.logf("The joystick is now calibrated, you can now see joystick data by pressing the A button.")
		return
	}
	demo.prompt()
}

func (demo *stick) openCrosshair() {
	s := demo.s
	d := s.openPanel(s.cfg.Panels[0])
	if d == nil {
		return
	}
	size := d.Frame().Size()
	center := size.Div(2)
	style := display.Style{Color: display.White}

	if _, err := d.Add(display.Rectangle(display.V(0, 0), size.Sub(display.V(1, 1))), style); err != nil {
		s.logf("No primitives: %v", err)
	}
	dot, err := d.Add(display.Circle(center, 3), style)
	if err != nil {
		s.logf("No primitives: %v", err)
	}
	label, err := d.Add(display.Text(display.V(2, 10), "--"), style)
	if err != nil {
		s.logf("No primitives: %v", err)
	}
	demo.panel, demo.dot, demo.label = d, dot, label
	d.SetBackground(display.Black)
	if err := d.Draw(); err != nil {
		s.logf("Drawing %s: %v", d.Kind(), err)
	}
}

// drawCrosshair moves the dot to the reading; +y is up on the panel.
func (demo *stick) drawCrosshair(xy joystick.XY) {
	d := demo.panel
	if d == nil {
		return
	}
	size := d.Frame().Size()
	center := size.Div(2)
	reach := center.Sub(display.V(5, 5))

	if p, err := d.Primitive(demo.dot); err == nil {
		pos := display.V(center.X+xy.X*reach.X/100, center.Y-xy.Y*reach.Y/100)
		p.Shape = display.Circle(pos, 3)
	}
	if p, err := d.Primitive(demo.label); err == nil {
		p.Shape = display.Text(display.V(2, 10), formatXY(xy))
	}
	d.SetBackground(display.Black)
	if err := d.Draw(); err != nil {
		demo.s.logf("Drawing %s: %v", d.Kind(), err)
	}
}

func formatXY(xy joystick.XY) string {
	return fmt.Sprintf("x %d%% y %d%%", xy.X, xy.Y)
}
