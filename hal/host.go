//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"rtcore/display"
)

// Host pin map, mirroring the MT3620 reference board: RGB "play" LED on
// 45..47, Wi-Fi red on 48, and three outputs jumpered back to three inputs.
var hostLoopback = map[int]int{70: 60, 66: 28, 44: 31}

const hostPinCount = 72

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   *pinBank
	btnA   *buttonPin
	btnB   *buttonPin
	pulse  *pulsePin
	adc    *hostADC
	t      *hostTime
	mem    *memPanels
	panels display.Driver
	closer []io.Closer
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	h, err := newHostHAL(cfg)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func newHostHAL(cfg HostConfig) (*hostHAL, error) {
	cfg.applyDefaults()

	logger := &hostLogger{w: os.Stdout}
	h := &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		btnB:   newButtonPin("BUTTON_B"),
		adc:    newHostADC(),
		t:      newHostTime(),
	}

	if cfg.SerialPort != "" {
		port, err := openSerialMirror(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			return nil, err
		}
		logger.mirror = port
		h.closer = append(h.closer, port)
	}

	overrides := map[int]GPIOPin{
		PinButtonB: h.btnB,
		45:         newLEDPin("PLAY_R", h.led),
	}
	if cfg.AutoPress > 0 {
		pin := newPulsePin("BUTTON_A", cfg.AutoPress, 50*time.Millisecond)
		h.pulse, _ = pin.(*pulsePin)
		overrides[PinButtonA] = pin
	} else {
		h.btnA = newButtonPin("BUTTON_A")
		overrides[PinButtonA] = h.btnA
	}
	bank := newPinBank(hostPinCount, overrides)
	for in, out := range hostLoopback {
		bank.pins[in] = &loopbackPin{name: fmt.Sprintf("GPIO%d", in), src: bank.pins[out]}
	}
	h.gpio = bank

	h.mem = newMemPanels(logger, cfg.SnapshotDir, cfg.SnapshotScale)
	h.panels = h.mem
	if cfg.Periph {
		drv, err := newPeriphPanels(cfg.I2CBus)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.closer = append(h.closer, drv)
		h.panels = &teePanels{primary: drv, mirror: h.mem}
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger         { return h.logger }
func (h *hostHAL) LED() LED               { return h.led }
func (h *hostHAL) GPIO() GPIO             { return h.gpio }
func (h *hostHAL) ADC() ADC               { return h.adc }
func (h *hostHAL) Time() Time             { return h.t }
func (h *hostHAL) Panels() display.Driver { return h.panels }

// step advances the tick stream and the scheduled button, once per runner
// iteration.
func (h *hostHAL) step() {
	h.t.step()
	if h.pulse != nil {
		h.pulse.sample()
	}
}

// Close releases host resources such as the serial mirror.
func (h *hostHAL) Close() error {
	var first error
	for _, c := range h.closer {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	h.closer = nil
	return first
}

type hostLogger struct {
	mu     sync.Mutex
	w      io.Writer
	mirror io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
	if l.mirror != nil {
		io.WriteString(l.mirror, s+"\r\n")
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
	if l.mirror != nil {
		l.mirror.Write(b)
		l.mirror.Write([]byte{'\r', '\n'})
	}
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
