package app

import (
	"testing"

	"rtcore/hal"
)

func TestJoystickSequencer(t *testing.T) {
	r := newRig(t, Config{Demo: DemoJoystick})
	r.expectLog("The joystick needs to be calibrated before use.")
	r.expectLog("Please move the joystick to its center position. When ready press the A button.")
	demo := r.s.demo.(*stick)

	r.press(hal.PinButtonA) // centre
	if demo.phase != 1 {
		t.Fatalf("phase %d after centre", demo.phase)
	}

	// still centred: the max reading is rejected and the phase repeats
	r.press(hal.PinButtonA)
	r.expectLog("Error: The joystick value was not as expected, please try again.")
	if demo.phase != 1 {
		t.Fatalf("phase %d after rejected reading", demo.phase)
	}

	steps := []struct{ x, y uint32 }{
		{2048, 4095}, // y max
		{2048, 0},    // y min
		{4095, 2048}, // x max
		{0, 2048},    // x min
	}
	for _, st := range steps {
		r.h.adc.x, r.h.adc.y = st.x, st.y
		r.press(hal.PinButtonA)
	}
	r.expectLog("The joystick is now calibrated")
	if !demo.calibrated() {
		t.Fatalf("phase %d", demo.phase)
	}

	r.h.adc.x, r.h.adc.y = 4095, 2048
	r.press(hal.PinButtonA)
	r.expectLog("Joystick V_x = 100% Joystick V_y = 0%")

	r.h.adc.x, r.h.adc.y = 2048, 0
	r.press(hal.PinButtonA)
	r.expectLog("Joystick V_x = 0% Joystick V_y = -100%")
}

func TestJoystickCrosshair(t *testing.T) {
	r := newRig(t, Config{Demo: DemoJoystick, Crosshair: true})
	demo := r.s.demo.(*stick)
	if demo.panel == nil {
		t.Fatal("crosshair panel not opened")
	}
	before := r.h.panels.opened[0].flushes

	for _, st := range []struct{ x, y uint32 }{{2048, 2048}, {2048, 4095}, {2048, 0}, {4095, 2048}, {0, 2048}} {
		r.h.adc.x, r.h.adc.y = st.x, st.y
		r.press(hal.PinButtonA)
	}
	r.h.adc.x, r.h.adc.y = 4095, 4095
	r.press(hal.PinButtonA)

	if r.h.panels.opened[0].flushes != before+1 {
		t.Fatalf("flushes %d, want %d", r.h.panels.opened[0].flushes, before+1)
	}
	p, err := demo.panel.Primitive(demo.dot)
	if err != nil {
		t.Fatalf("Primitive: %v", err)
	}
	size := demo.panel.Frame().Size()
	if a := p.Shape.Anchor(); a.X <= size.X/2 || a.Y >= size.Y/2 {
		t.Fatalf("dot at %v, want upper right", a)
	}
	if p, _ := demo.panel.Primitive(demo.label); p.Shape.Label() != "x 100% y 100%" {
		t.Fatalf("label %q", p.Shape.Label())
	}
}
