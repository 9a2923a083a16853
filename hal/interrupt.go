package hal

import (
	"fmt"
	"sync"
	"time"
)

// Edge selects which level transitions raise a pin interrupt.
type Edge uint8

const (
	EdgeFalling Edge = 1 << iota
	EdgeRising
	EdgeBoth = EdgeFalling | EdgeRising
)

func (e Edge) String() string {
	switch e {
	case EdgeFalling:
		return "falling"
	case EdgeRising:
		return "rising"
	case EdgeBoth:
		return "both"
	default:
		return fmt.Sprintf("Edge(%d)", uint8(e))
	}
}

// InterruptConfig arms a pin interrupt. An edge that follows the last
// accepted edge by less than Debounce is dropped.
type InterruptConfig struct {
	Edge     Edge
	Debounce time.Duration
}

// InterruptPin is a pin that can raise an interrupt on its edges. The handler
// runs in interrupt context: it may only hand work to the main loop.
// A nil handler disarms the pin.
type InterruptPin interface {
	GPIOPin
	SetInterrupt(cfg InterruptConfig, fn func()) error
}

func checkInterrupt(name string, cfg InterruptConfig) error {
	if cfg.Edge == 0 || cfg.Edge&^EdgeBoth != 0 {
		return fmt.Errorf("gpio: pin %s: bad interrupt edge %s", name, cfg.Edge)
	}
	if cfg.Debounce < 0 {
		return fmt.Errorf("gpio: pin %s: negative debounce", name)
	}
	return nil
}

// edgeWatch raises interrupts for a virtual pin whose level is moved from
// outside, such as a key or a scheduled press.
type edgeWatch struct {
	mu    sync.Mutex
	now   func() time.Time
	cfg   InterruptConfig
	fn    func()
	level bool
	fired bool
	last  time.Time
}

func (w *edgeWatch) arm(name string, cfg InterruptConfig, fn func(), level bool) error {
	if fn != nil {
		if err := checkInterrupt(name, cfg); err != nil {
			return err
		}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg, w.fn, w.level = cfg, fn, level
	w.fired = false
	return nil
}

// update records level and runs the handler, outside the lock, when the
// transition matches the armed edge.
func (w *edgeWatch) update(level bool) {
	w.mu.Lock()
	if level == w.level {
		w.mu.Unlock()
		return
	}
	w.level = level
	edge := EdgeRising
	if !level {
		edge = EdgeFalling
	}
	fn := w.fn
	if fn == nil || w.cfg.Edge&edge == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now
	if w.now != nil {
		now = w.now
	}
	t := now()
	if w.fired && t.Sub(w.last) < w.cfg.Debounce {
		w.mu.Unlock()
		return
	}
	w.fired, w.last = true, t
	w.mu.Unlock()
	fn()
}
