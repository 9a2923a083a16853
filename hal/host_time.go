//go:build !tinygo

package hal

import (
	"sync"
	"time"

	"rtcore/kernel"
)

// maxTickBurst bounds how many ticks one step may emit after a stall.
const maxTickBurst = 1000

// hostTime turns wall-clock progress, sampled by the runner loop, into
// millisecond ticks.
type hostTime struct {
	mu  sync.Mutex
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks that elapsed since the previous call. The first
// call emits one.
func (t *hostTime) step() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if t.last.IsZero() {
		t.last = now
		t.emit(1)
		return
	}
	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / kernel.TickPeriod)
	if n == 0 {
		return
	}
	t.acc %= kernel.TickPeriod
	t.emit(min(n, maxTickBurst))
}

func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
