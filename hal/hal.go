package hal

import (
	"errors"

	"rtcore/display"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Board button pins. Both read low while pressed.
const (
	PinButtonA = 12
	PinButtonB = 13
)

// ADCSample is one converted channel, 12-bit.
type ADCSample struct {
	Channel uint16
	Value   uint32
}

// ADC exposes the most recent periodic conversion results.
type ADC interface {
	Samples() []ADCSample
}

// Time provides a base tick stream.
//
// Ticks are one millisecond apart; the sequence number never goes backwards.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the demos and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	ADC() ADC
	Time() Time
	Panels() display.Driver
}
