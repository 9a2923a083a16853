package app

import (
	"strings"
	"sync"
	"testing"

	"rtcore/display"
	"rtcore/hal"
)

type fakeLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *fakeLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLog) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type fakePin struct {
	id    int
	mode  hal.GPIOMode
	level bool
	src   *fakePin

	irqCfg hal.InterruptConfig
	irq    func()
}

func (p *fakePin) Name() string { return "P" }
func (p *fakePin) Caps() hal.GPIOCaps {
	return hal.GPIOCapInput | hal.GPIOCapOutput | hal.GPIOCapPullUp
}
func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	p.mode = mode
	if pull == hal.GPIOPullUp {
		p.level = true
	}
	return nil
}
func (p *fakePin) Read() (bool, error) {
	if p.src != nil {
		return p.src.level, nil
	}
	return p.level, nil
}
func (p *fakePin) Write(level bool) error {
	p.level = level
	return nil
}

func (p *fakePin) SetInterrupt(cfg hal.InterruptConfig, fn func()) error {
	p.irqCfg, p.irq = cfg, fn
	return nil
}

type fakeGPIO struct {
	pins map[int]*fakePin
}

func (g *fakeGPIO) PinCount() int { return 72 }

func (g *fakeGPIO) Pin(id int) hal.GPIOPin { return g.pin(id) }

func (g *fakeGPIO) pin(id int) *fakePin {
	if g.pins == nil {
		g.pins = make(map[int]*fakePin)
	}
	p, ok := g.pins[id]
	if !ok {
		p = &fakePin{id: id}
		g.pins[id] = p
	}
	return p
}

type fakeADC struct {
	x, y uint32
}

func (a *fakeADC) Samples() []hal.ADCSample {
	return []hal.ADCSample{{Channel: 0, Value: a.x}, {Channel: 1, Value: a.y}}
}

type fakePanel struct {
	flushes int
}

func (p *fakePanel) Flush(*display.Frame) error { p.flushes++; return nil }
func (p *fakePanel) Close() error               { return nil }

type fakePanels struct {
	opened []*fakePanel
}

func (d *fakePanels) Open(display.PanelKind, display.Unit) (display.Backend, error) {
	p := &fakePanel{}
	d.opened = append(d.opened, p)
	return p, nil
}

type fakeLED struct{}

func (fakeLED) High() {}
func (fakeLED) Low()  {}

type fakeHAL struct {
	log    *fakeLog
	gpio   *fakeGPIO
	adc    *fakeADC
	panels *fakePanels
}

func (h *fakeHAL) Logger() hal.Logger     { return h.log }
func (h *fakeHAL) LED() hal.LED           { return fakeLED{} }
func (h *fakeHAL) GPIO() hal.GPIO         { return h.gpio }
func (h *fakeHAL) ADC() hal.ADC           { return h.adc }
func (h *fakeHAL) Time() hal.Time         { return nil }
func (h *fakeHAL) Panels() display.Driver { return h.panels }

// rig drives a system by hand: ticks go straight into the GPT and the
// queue is drained after every simulated press.
type rig struct {
	t   *testing.T
	h   *fakeHAL
	s   *system
	seq uint64
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()
	h := &fakeHAL{
		log:    &fakeLog{},
		gpio:   &fakeGPIO{},
		adc:    &fakeADC{x: 2048, y: 2048},
		panels: &fakePanels{},
	}
	return &rig{t: t, h: h, s: newSystem(h, cfg)}
}

func (r *rig) advance(ms uint32) {
	for i := uint32(0); i < ms; i++ {
		r.seq++
		r.s.gpt.Tick(r.seq)
	}
}

func (r *rig) press(pin int) {
	p := r.h.gpio.pin(pin)
	poll := r.s.cfg.ButtonPollMs
	p.level = false
	r.advance(poll)
	p.level = true
	r.advance(poll)
	if err := r.s.step(); err != nil {
		r.t.Fatalf("step: %v", err)
	}
}

func (r *rig) expectLog(sub string) {
	r.t.Helper()
	if !r.h.log.contains(sub) {
		r.t.Fatalf("log has no %q; got:\n%s", sub, strings.Join(r.h.log.lines, "\n"))
	}
}
