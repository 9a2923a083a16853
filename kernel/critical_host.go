//go:build !tinygo

package kernel

import (
	"context"
	"sync"
)

// critical stands in for the interrupt mask on the host, where "interrupt"
// producers are goroutines.
type critical struct {
	mu   sync.Mutex
	wake chan struct{}
}

type maskState struct{}

func (c *critical) enter() maskState {
	c.mu.Lock()
	if c.wake == nil {
		c.wake = make(chan struct{}, 1)
	}
	return maskState{}
}

func (c *critical) exit(maskState) {
	c.mu.Unlock()
}

// notify must be called inside enter/exit.
func (c *critical) notify() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until the queue holds work or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		s := q.cs.enter()
		pending := q.head != nil
		wake := q.cs.wake
		q.cs.exit(s)
		if pending {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
		}
	}
}
