package kernel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUnitsTicks(t *testing.T) {
	cases := []struct {
		units Units
		count uint32
		want  uint64
	}{
		{UnitsMicrosec, 1, 1},
		{UnitsMicrosec, 1000, 1},
		{UnitsMicrosec, 1001, 2},
		{UnitsMillisec, 10, 10},
		{UnitsSec, 2, 2000},
	}
	for _, tc := range cases {
		got, err := tc.units.Ticks(tc.count)
		if err != nil {
			t.Fatalf("Ticks(%d %s): %v", tc.count, tc.units, err)
		}
		if got != tc.want {
			t.Fatalf("Ticks(%d %s) = %d, want %d", tc.count, tc.units, got, tc.want)
		}
	}

	if _, err := UnitsMillisec.Ticks(0); !errors.Is(err, ErrInvalidTimeout) {
		t.Fatalf("Ticks(0) err = %v, want ErrInvalidTimeout", err)
	}
	if _, err := Units(9).Ticks(1); !errors.Is(err, ErrInvalidTimeout) {
		t.Fatalf("Ticks with bad units err = %v, want ErrInvalidTimeout", err)
	}
}

func TestGPTRepeat(t *testing.T) {
	g := NewGPT()
	fired := 0
	tm, err := g.StartTimeout(10, UnitsMillisec, ModeRepeat, func() { fired++ })
	if err != nil {
		t.Fatalf("StartTimeout: %v", err)
	}

	for seq := uint64(1); seq <= 35; seq++ {
		g.Tick(seq)
	}
	if fired != 3 {
		t.Fatalf("fired = %d after 35 ticks, want 3", fired)
	}

	tm.Stop()
	if tm.Active() {
		t.Fatalf("Active() = true after Stop")
	}
	for seq := uint64(36); seq <= 60; seq++ {
		g.Tick(seq)
	}
	if fired != 3 {
		t.Fatalf("fired = %d after Stop, want 3", fired)
	}
}

func TestGPTOneShot(t *testing.T) {
	g := NewGPT()
	fired := 0
	tm, err := g.StartTimeout(500, UnitsMicrosec, ModeOneShot, func() { fired++ })
	if err != nil {
		t.Fatalf("StartTimeout: %v", err)
	}

	g.Tick(1)
	g.Tick(2)
	g.Tick(3)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if tm.Active() {
		t.Fatalf("one-shot still active after firing")
	}
	tm.Stop()
}

func TestGPTRepeatAfterStall(t *testing.T) {
	g := NewGPT()
	fired := 0
	if _, err := g.StartTimeout(5, UnitsMillisec, ModeRepeat, func() { fired++ }); err != nil {
		t.Fatalf("StartTimeout: %v", err)
	}

	g.Tick(100)
	if fired != 1 {
		t.Fatalf("fired = %d after stall, want 1", fired)
	}
	g.Tick(104)
	if fired != 1 {
		t.Fatalf("fired = %d before next period, want 1", fired)
	}
	g.Tick(105)
	if fired != 2 {
		t.Fatalf("fired = %d at next period, want 2", fired)
	}
}

func TestGPTStartTimeoutRejectsNil(t *testing.T) {
	g := NewGPT()
	if _, err := g.StartTimeout(1, UnitsMillisec, ModeOneShot, nil); !errors.Is(err, ErrInvalidTimeout) {
		t.Fatalf("err = %v, want ErrInvalidTimeout", err)
	}
}

func TestGPTWaitTimeout(t *testing.T) {
	g := NewGPT()
	ticks := make(chan uint64)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		for seq := uint64(1); ; seq++ {
			select {
			case <-ctx.Done():
				return
			case ticks <- seq:
			}
		}
	}()
	go g.Run(ctx, ticks)

	if err := g.WaitTimeout(ctx, 20, UnitsMillisec); err != nil {
		t.Fatalf("WaitTimeout: %v", err)
	}
	if now := g.Now(); now < 20 {
		t.Fatalf("Now() = %d after wait, want >= 20", now)
	}
}

func TestGPTWaitTimeoutCanceled(t *testing.T) {
	g := NewGPT()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.WaitTimeout(ctx, 1, UnitsSec); err != context.Canceled {
		t.Fatalf("WaitTimeout = %v, want context.Canceled", err)
	}
	if g.head != nil {
		t.Fatalf("canceled wait left a timer armed")
	}
}
