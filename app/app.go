package app

import (
	"context"
	"fmt"

	"rtcore/display"
	"rtcore/hal"
	"rtcore/internal/buildinfo"
	"rtcore/kernel"
)

// system is one running demo: the deferred-callback queue drained by the
// main loop and the GPT fed by the HAL tick stream.
type system struct {
	h   hal.HAL
	log hal.Logger
	q   *kernel.Queue
	gpt *kernel.GPT
	dc  *display.Context
	cfg Config

	demo any
}

// New starts the demo selected by cfg and returns the main-loop step:
// each call drains the queued callbacks.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run starts the demo and services callbacks forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	s := newSystem(h, cfg)
	ctx := context.Background()
	for {
		s.q.Wait(ctx)
		s.q.Drain()
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	cfg.applyDefaults()
	s := &system{
		h:   h,
		log: h.Logger(),
		q:   &kernel.Queue{},
		gpt: kernel.NewGPT(),
		dc:  display.NewContext(h.Panels()),
		cfg: cfg,
	}

	switch cfg.Demo {
	case DemoJoystick:
		s.demo = startJoystick(s)
	case DemoGPIO:
		s.demo = startGPIO(s)
	case DemoADC:
		s.demo = startADC(s)
	case DemoEINT:
		s.demo = startEINT(s)
	default:
		s.demo = startShapes(s)
	}

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go s.gpt.Run(context.Background(), ch)
		}
	}
	return s
}

func (s *system) step() error {
	s.q.Drain()
	return nil
}

func (s *system) logf(format string, args ...any) {
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (s *system) banner(name string) {
	for _, line := range buildinfo.Banner(name) {
		s.log.WriteLineString(line)
	}
}

// pollButtons samples the buttons from the GPT callback, the way the
// board's timer interrupt does.
func (s *system) pollButtons(b *buttons) *kernel.Timeout {
	t, err := s.gpt.StartTimeout(s.cfg.ButtonPollMs, kernel.UnitsMillisec, kernel.ModeRepeat, b.poll)
	if err != nil {
		s.logf("ERROR: Starting timer (%v)", err)
		return nil
	}
	return t
}

// openPanel opens p, logging the failure in the demos' format.
func (s *system) openPanel(p Panel) *display.Display {
	d, err := s.dc.Open(p.Kind, p.Unit)
	if err != nil {
		s.logf("Error: %s display initialisation failed: %v", p.Kind, err)
		return nil
	}
	return d
}
