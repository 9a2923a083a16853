package hal

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIO provides access to general-purpose IO pins by board pin number.
//
// Pin returns nil for numbers the board does not route.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

func checkConfig(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeInput:
		if caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", name)
		}
	case GPIOModeOutput:
		if caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", name)
		}
	case GPIOPullDown:
		if caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	return nil
}

type pinBank struct {
	pins []GPIOPin
}

// newPinBank fills count pins with plain virtual pins, then applies the
// board-specific overrides.
func newPinBank(count int, overrides map[int]GPIOPin) *pinBank {
	b := &pinBank{pins: make([]GPIOPin, count)}
	for i := range b.pins {
		if p, ok := overrides[i]; ok {
			b.pins[i] = p
			continue
		}
		b.pins[i] = newVirtualPin(fmt.Sprintf("GPIO%d", i), GPIOCapInput|GPIOCapOutput|GPIOCapPullUp|GPIOCapPullDown)
	}
	return b
}

func (b *pinBank) PinCount() int {
	if b == nil {
		return 0
	}
	return len(b.pins)
}

func (b *pinBank) Pin(id int) GPIOPin {
	if b == nil || id < 0 || id >= len(b.pins) {
		return nil
	}
	return b.pins[id]
}

type virtualPin struct {
	mu    sync.Mutex
	name  string
	caps  GPIOCaps
	mode  GPIOMode
	pull  GPIOPull
	level bool
}

func newVirtualPin(name string, caps GPIOCaps) *virtualPin {
	return &virtualPin{name: name, caps: caps}
}

func (p *virtualPin) Name() string   { return p.name }
func (p *virtualPin) Caps() GPIOCaps { return p.caps }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkConfig(p.name, p.caps, mode, pull); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	p.pull = pull
	if mode == GPIOModeInput {
		p.level = pull == GPIOPullUp
	}
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

// buttonPin is a push button to ground with the pull-up enabled: it reads
// high until pressed.
type buttonPin struct {
	mu      sync.Mutex
	name    string
	pressed bool
	irq     edgeWatch
}

func newButtonPin(name string) *buttonPin { return &buttonPin{name: name} }

func (p *buttonPin) Name() string   { return p.name }
func (p *buttonPin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *buttonPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *buttonPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.pressed, nil
}

func (p *buttonPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

func (p *buttonPin) SetInterrupt(cfg InterruptConfig, fn func()) error {
	level, _ := p.Read()
	return p.irq.arm(p.name, cfg, fn, level)
}

func (p *buttonPin) set(pressed bool) {
	p.mu.Lock()
	p.pressed = pressed
	p.mu.Unlock()
	p.irq.update(!pressed)
}

// pulsePin reads low for the first `low` of every period, as if a button
// were pressed on a schedule. Headless runs use it to drive the demos.
type pulsePin struct {
	name string

	t0     time.Time
	now    func() time.Time
	period time.Duration
	low    time.Duration

	irq edgeWatch
}

func newPulsePin(name string, period, low time.Duration) GPIOPin {
	return newPulsePinWithClock(name, period, low, time.Now)
}

func newPulsePinWithClock(name string, period, low time.Duration, now func() time.Time) GPIOPin {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	if period <= 0 {
		period = 1 * time.Second
	}
	low = min(max(low, 0), period)
	return &pulsePin{
		name:   name,
		t0:     now(),
		now:    now,
		period: period,
		low:    low,
		irq:    edgeWatch{now: now},
	}
}

func (p *pulsePin) Name() string   { return p.name }
func (p *pulsePin) Caps() GPIOCaps { return GPIOCapInput | GPIOCapPullUp }

func (p *pulsePin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *pulsePin) Read() (bool, error) {
	elapsed := p.now().Sub(p.t0)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return elapsed%p.period >= p.low, nil
}

func (p *pulsePin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

func (p *pulsePin) SetInterrupt(cfg InterruptConfig, fn func()) error {
	level, _ := p.Read()
	return p.irq.arm(p.name, cfg, fn, level)
}

// sample feeds the scheduled level to the edge watch; the host runner calls
// it once per step.
func (p *pulsePin) sample() {
	level, _ := p.Read()
	p.irq.update(level)
}

// loopbackPin is an input jumpered to another pin's output.
type loopbackPin struct {
	name string
	src  GPIOPin
}

func (p *loopbackPin) Name() string   { return p.name }
func (p *loopbackPin) Caps() GPIOCaps { return GPIOCapInput }

func (p *loopbackPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *loopbackPin) Read() (bool, error) {
	if p.src == nil {
		return false, fmt.Errorf("gpio: pin %s: not wired", p.name)
	}
	return p.src.Read()
}

func (p *loopbackPin) Write(bool) error {
	return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
}

// ledPin drives an LED; the level is the electrical level.
type ledPin struct {
	mu    sync.Mutex
	led   LED
	name  string
	level bool
}

func newLEDPin(name string, led LED) GPIOPin {
	if led == nil {
		return nil
	}
	return &ledPin{led: led, name: name}
}

func (p *ledPin) Name() string   { return p.name }
func (p *ledPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkConfig(p.name, p.Caps(), mode, pull)
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	return nil
}
