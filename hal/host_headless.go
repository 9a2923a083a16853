//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int
}

// RunHeadless runs a demo without opening a window. Each loop iteration
// advances the millisecond clock and calls step up to StepBudget times.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig, hc HostConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 1000
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}

	h, err := newHostHAL(hc)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.step()
			for i := 0; step != nil && i < cfg.StepBudget; i++ {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
