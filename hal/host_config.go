//go:build !tinygo

package hal

import "time"

// HostConfig selects the host-side stand-ins for the board peripherals.
type HostConfig struct {
	// SerialPort mirrors every log line to a serial device, e.g. a USB UART
	// wired to a logic analyser. Empty disables the mirror.
	SerialPort string
	SerialBaud int

	// Periph drives real panels on a Linux SBC through periph.io instead of
	// the in-memory panels.
	Periph bool
	I2CBus string

	// SnapshotDir receives a PNG of every flushed frame. Empty disables it.
	SnapshotDir   string
	SnapshotScale int

	// AutoPress makes button A press itself once per period, so headless
	// runs step through the demos.
	AutoPress time.Duration
}

func (c *HostConfig) applyDefaults() {
	if c.SerialBaud <= 0 {
		c.SerialBaud = 115200
	}
	if c.SnapshotScale <= 0 {
		c.SnapshotScale = 4
	}
	if c.AutoPress < 0 {
		c.AutoPress = 0
	}
}
