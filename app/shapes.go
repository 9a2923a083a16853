package app

import (
	"rtcore/display"
	"rtcore/hal"
)

var backgrounds = [...]display.Color{display.Black, display.Blue, display.Green, display.Red, display.White}

// shapeAt returns the shape button A places on its i-th press.
func shapeAt(i int) display.Shape {
	switch i % 4 {
	case 0:
		return display.Point(display.V(10, 10))
	case 1:
		return display.Line(display.V(10, 10), display.V(20, 20))
	case 2:
		return display.Circle(display.V(40, 40), 20)
	default:
		return display.Rectangle(display.V(10, 10), display.V(20, 20))
	}
}

type shapeTarget struct {
	d    *display.Display
	prim display.PrimitiveID
}

// shapes cycles the shape on every panel with button A and the
// background colour with button B.
type shapes struct {
	s       *system
	targets []*shapeTarget
	shape   int
	bg      int
}

func startShapes(s *system) *shapes {
	s.banner("Super Serious")
	s.logf("Press A to toggle image.")

	demo := &shapes{s: s}
	for _, p := range s.cfg.Panels {
		if d := s.openPanel(p); d != nil {
			demo.targets = append(demo.targets, &shapeTarget{d: d})
		}
	}

	b, err := newButtons(s.h.GPIO(), s.q, []int{hal.PinButtonA, hal.PinButtonB}, []func(){demo.buttonA, demo.buttonB})
	if err != nil {
		s.logf("ERROR: buttons: %v", err)
		return demo
	}
	s.pollButtons(b)
	return demo
}

func (demo *shapes) style() display.Style {
	return display.Style{Color: display.Black, Thickness: 3, Filled: demo.shape%4 == 3}
}

func (demo *shapes) buttonA() {
	s := demo.s
	shape := shapeAt(demo.shape)
	style := demo.style()
	for _, t := range demo.targets {
		if t.prim != 0 {
			if err := t.d.Free(t.prim); err != nil {
				s.logf("Issue removing %s primitive %#x: %v", t.d.Kind(), uint32(t.prim), err)
			}
			t.prim = 0
		}
		id, err := t.d.Add(shape, style)
		if err != nil {
			s.logf("No primitives on %s: %v", t.d.Kind(), err)
		}
		t.prim = id
		demo.redraw(t)
	}
	demo.shape = (demo.shape + 1) % 4
}

func (demo *shapes) buttonB() {
	demo.bg = (demo.bg + 1) % len(backgrounds)
	for _, t := range demo.targets {
		demo.redraw(t)
	}
}

func (demo *shapes) redraw(t *shapeTarget) {
	s := demo.s
	name := t.d.Kind()
	s.logf("Filling %s: %s, %d", name, result(t.d.SetBackground(backgrounds[demo.bg])), demo.bg)
	s.logf("Drawing %s: %s", name, result(t.d.Draw()))
}

func result(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
