//go:build tinygo

package kernel

import (
	"context"
	"runtime/interrupt"
	"time"
)

type critical struct{}

type maskState = interrupt.State

func (c *critical) enter() maskState {
	return interrupt.Disable()
}

func (c *critical) exit(s maskState) {
	interrupt.Restore(s)
}

// notify is a no-op: Enqueue may run inside an interrupt handler where
// channel operations are not allowed. Wait polls instead.
func (c *critical) notify() {}

// Wait blocks until the queue holds work or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for !q.Pending() {
		if err := ctx.Err(); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
