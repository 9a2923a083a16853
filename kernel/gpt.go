package kernel

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TickPeriod is the duration of one GPT tick.
const TickPeriod = time.Millisecond

// Units selects how a timeout count is interpreted.
type Units uint8

const (
	UnitsMicrosec Units = iota
	UnitsMillisec
	UnitsSec
)

func (u Units) String() string {
	switch u {
	case UnitsMicrosec:
		return "us"
	case UnitsMillisec:
		return "ms"
	case UnitsSec:
		return "s"
	default:
		return fmt.Sprintf("Units(%d)", uint8(u))
	}
}

// Mode selects whether a timeout re-arms after it fires.
type Mode uint8

const (
	ModeOneShot Mode = iota
	ModeRepeat
)

var ErrInvalidTimeout = errors.New("kernel: invalid timeout")

// Ticks converts count units to GPT ticks, rounding sub-tick durations up.
func (u Units) Ticks(count uint32) (uint64, error) {
	if count == 0 {
		return 0, ErrInvalidTimeout
	}
	switch u {
	case UnitsMicrosec:
		per := uint64(TickPeriod / time.Microsecond)
		return (uint64(count) + per - 1) / per, nil
	case UnitsMillisec:
		return uint64(count) * uint64(time.Millisecond/TickPeriod), nil
	case UnitsSec:
		return uint64(count) * uint64(time.Second/TickPeriod), nil
	default:
		return 0, fmt.Errorf("kernel: units %s: %w", u, ErrInvalidTimeout)
	}
}

// Timeout is an armed GPT callback.
type Timeout struct {
	gpt    *GPT
	fn     func()
	period uint64
	due    uint64
	mode   Mode
	active bool
	next   *Timeout
}

// GPT is a general purpose timer block driven by a 1 ms tick source.
//
// Expired callbacks run on the goroutine that calls Tick, which plays the
// role of the timer interrupt: they should only enqueue deferred work.
type GPT struct {
	cs   critical
	now  uint64
	head *Timeout
	fire []*Timeout
}

// NewGPT returns a timer block at tick 0.
func NewGPT() *GPT {
	return &GPT{fire: make([]*Timeout, 0, 8)}
}

// Now returns the last tick seen by Tick.
func (g *GPT) Now() uint64 {
	s := g.cs.enter()
	now := g.now
	g.cs.exit(s)
	return now
}

// StartTimeout arms fn to run after count units, once or repeatedly.
func (g *GPT) StartTimeout(count uint32, units Units, mode Mode, fn func()) (*Timeout, error) {
	if fn == nil {
		return nil, fmt.Errorf("kernel: nil timeout callback: %w", ErrInvalidTimeout)
	}
	ticks, err := units.Ticks(count)
	if err != nil {
		return nil, err
	}

	t := &Timeout{gpt: g, fn: fn, period: ticks, mode: mode}
	s := g.cs.enter()
	t.due = g.now + ticks
	t.active = true
	t.next = g.head
	g.head = t
	g.cs.exit(s)
	return t, nil
}

// Stop disarms t. Stopping an expired one-shot timeout is a no-op.
func (t *Timeout) Stop() {
	if t == nil || t.gpt == nil {
		return
	}
	g := t.gpt
	s := g.cs.enter()
	g.unlink(t)
	g.cs.exit(s)
}

// Active reports whether t is still armed.
func (t *Timeout) Active() bool {
	if t == nil || t.gpt == nil {
		return false
	}
	s := t.gpt.cs.enter()
	active := t.active
	t.gpt.cs.exit(s)
	return active
}

func (g *GPT) unlink(t *Timeout) {
	if !t.active {
		return
	}
	t.active = false
	if g.head == t {
		g.head = t.next
		t.next = nil
		return
	}
	for cur := g.head; cur != nil; cur = cur.next {
		if cur.next == t {
			cur.next = t.next
			t.next = nil
			return
		}
	}
}

// Tick advances the timer block to seq and runs every expired callback.
// A repeating timeout fires at most once per call, even after a long stall.
func (g *GPT) Tick(seq uint64) {
	s := g.cs.enter()
	if seq > g.now {
		g.now = seq
	}
	g.fire = g.fire[:0]
	for t := g.head; t != nil; {
		next := t.next
		if t.due <= g.now {
			g.fire = append(g.fire, t)
			if t.mode == ModeRepeat {
				t.due += t.period
				if t.due <= g.now {
					t.due = g.now + t.period
				}
			} else {
				g.unlink(t)
			}
		}
		t = next
	}
	fire := g.fire
	g.cs.exit(s)

	for _, t := range fire {
		t.fn()
	}
}

// Run feeds ticks into the timer block until ctx is done or ticks closes.
func (g *GPT) Run(ctx context.Context, ticks <-chan uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case seq, ok := <-ticks:
			if !ok {
				return nil
			}
			g.Tick(seq)
		}
	}
}

// WaitTimeout blocks until count units have elapsed on the tick source.
func (g *GPT) WaitTimeout(ctx context.Context, count uint32, units Units) error {
	done := make(chan struct{}, 1)
	t, err := g.StartTimeout(count, units, ModeOneShot, func() {
		select {
		case done <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	case <-done:
		return nil
	}
}
