package hal

import (
	"testing"
	"time"
)

func TestButtonInterruptEdges(t *testing.T) {
	now := time.Unix(0, 0)
	p := newButtonPin("BTN")
	p.irq.now = func() time.Time { return now }

	fired := 0
	if err := p.SetInterrupt(InterruptConfig{Edge: EdgeFalling}, func() { fired++ }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}
	p.set(true)
	p.set(true) // no transition
	p.set(false)
	if fired != 1 {
		t.Fatalf("falling-edge fired %d times, want 1", fired)
	}

	if err := p.SetInterrupt(InterruptConfig{Edge: EdgeBoth}, func() { fired++ }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}
	now = now.Add(time.Second)
	p.set(true)
	now = now.Add(time.Second)
	p.set(false)
	if fired != 3 {
		t.Fatalf("dual-edge fired %d times, want 3", fired)
	}

	p.SetInterrupt(InterruptConfig{}, nil)
	p.set(true)
	if fired != 3 {
		t.Fatal("disarmed pin fired")
	}
}

func TestButtonInterruptDebounce(t *testing.T) {
	now := time.Unix(0, 0)
	p := newButtonPin("BTN")
	p.irq.now = func() time.Time { return now }

	fired := 0
	p.SetInterrupt(InterruptConfig{Edge: EdgeBoth, Debounce: 5 * time.Millisecond}, func() { fired++ })
	p.set(true)
	now = now.Add(time.Millisecond)
	p.set(false) // bounce
	now = now.Add(time.Millisecond)
	p.set(true) // bounce
	if fired != 1 {
		t.Fatalf("bouncing contact fired %d times, want 1", fired)
	}
	now = now.Add(10 * time.Millisecond)
	p.set(false)
	if fired != 2 {
		t.Fatalf("settled edge fired %d times, want 2", fired)
	}
}

func TestInterruptConfigRejected(t *testing.T) {
	p := newButtonPin("BTN")
	for _, cfg := range []InterruptConfig{{}, {Edge: 4}, {Edge: EdgeRising, Debounce: -1}} {
		if err := p.SetInterrupt(cfg, func() {}); err == nil {
			t.Fatalf("config %+v accepted", cfg)
		}
	}
}

func TestPulsePinInterrupt(t *testing.T) {
	now := time.Unix(0, 0)
	pin := newPulsePinWithClock("BTN", 10*time.Second, 2*time.Second, func() time.Time { return now })
	p := pin.(*pulsePin)

	fired := 0
	if err := p.SetInterrupt(InterruptConfig{Edge: EdgeFalling}, func() { fired++ }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}
	// armed while the scheduled press is low: nothing until the next press
	p.sample()
	now = now.Add(3 * time.Second)
	p.sample()
	now = now.Add(8 * time.Second)
	p.sample()
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
}
