package app

import (
	"sync/atomic"
	"time"

	"rtcore/hal"
	"rtcore/kernel"
)

// eintCycle is the number of presses between debounce changes.
const eintCycle = 10

// debounceSteps are the pad debounce settings, fastest first: one sample
// period of 32 kHz down to 256 Hz.
var debounceSteps = [...]time.Duration{
	31 * time.Microsecond,
	61 * time.Microsecond,
	122 * time.Microsecond,
	244 * time.Microsecond,
	488 * time.Microsecond,
	977 * time.Microsecond,
	1953 * time.Microsecond,
	3906 * time.Microsecond,
}

type eintButton struct {
	demo     *eint
	id       int
	pin      hal.InterruptPin
	node     *kernel.Node
	edges    atomic.Uint32 // counted in interrupt context
	count    uint32
	debounce int
	dualEdge bool
}

// eint counts edge interrupts on buttons A and B. Every tenth press moves
// the pin to the next debounce setting, and a full debounce cycle toggles
// between single and dual edge.
type eint struct {
	s       *system
	buttons []*eintButton
}

func startEINT(s *system) *eint {
	s.banner("EINT_RTApp_MT3620_BareMetal")
	s.logf("Demo of the external interrupt functionality on the MT3620")
	s.logf("Press buttons A and B on the dev board to test")

	demo := &eint{s: s}
	gpio := s.h.GPIO()
	for _, id := range []int{hal.PinButtonA, hal.PinButtonB} {
		b := &eintButton{demo: demo, id: id}
		b.node = kernel.NewNode(b.deferred)
		var pin hal.GPIOPin
		if gpio != nil {
			pin = gpio.Pin(id)
		}
		ip, ok := pin.(hal.InterruptPin)
		if !ok {
			s.logf("Error: configuring pin %d for external interrupts", id)
			continue
		}
		b.pin = ip
		if err := ip.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			s.logf("Error: configuring pin %d for external interrupts", id)
			continue
		}
		if err := b.arm(); err != nil {
			s.logf("Error: configuring pin %d for external interrupts", id)
			continue
		}
		demo.buttons = append(demo.buttons, b)
	}
	return demo
}

func (b *eintButton) config() hal.InterruptConfig {
	cfg := hal.InterruptConfig{Edge: hal.EdgeFalling, Debounce: debounceSteps[b.debounce]}
	if b.dualEdge {
		cfg.Edge = hal.EdgeBoth
	}
	return cfg
}

func (b *eintButton) arm() error {
	return b.pin.SetInterrupt(b.config(), b.interrupt)
}

// interrupt runs in interrupt context.
func (b *eintButton) interrupt() {
	b.edges.Add(1)
	b.demo.s.q.Enqueue(b.node)
}

// deferred replays every edge counted since the last drain.
func (b *eintButton) deferred() {
	for n := b.edges.Swap(0); n > 0; n-- {
		b.press()
	}
}

func (b *eintButton) press() {
	s := b.demo.s
	s.logf("EINT %d triggered (%d)", b.id, b.count)
	b.count++
	if b.count != eintCycle {
		return
	}
	b.count = 0

	next := (b.debounce + 1) % len(debounceSteps)
	s.logf("bounce freq %d -> %d", b.debounce, next)
	b.debounce = next
	if next == 0 {
		mode := "dual"
		if b.dualEdge {
			mode = "single"
		}
		s.logf("switching to %s mode", mode)
		b.dualEdge = !b.dualEdge
	}
	if err := b.arm(); err != nil {
		s.logf("Error: reconfiguring pin %d", b.id)
	}
}
