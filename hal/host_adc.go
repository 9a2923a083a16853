//go:build !tinygo

package hal

import "sync"

// Virtual two-axis joystick on ADC channels 0 (x) and 1 (y).
const (
	adcCenter = 2048
	adcFull   = 4095
)

type hostADC struct {
	mu   sync.Mutex
	x, y uint32
	buf  [2]ADCSample
}

func newHostADC() *hostADC {
	return &hostADC{x: adcCenter, y: adcCenter}
}

// Samples returns a snapshot; the slice is reused by the next call.
func (a *hostADC) Samples() []ADCSample {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buf[0] = ADCSample{Channel: 0, Value: a.x}
	a.buf[1] = ADCSample{Channel: 1, Value: a.y}
	return a.buf[:]
}

// deflect moves the stick: -1, 0 or +1 per axis.
func (a *hostADC) deflect(dx, dy int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.x = axisValue(dx)
	a.y = axisValue(dy)
}

func axisValue(d int) uint32 {
	switch {
	case d > 0:
		return adcFull
	case d < 0:
		return 0
	default:
		return adcCenter
	}
}
