//go:build tinygo && baremetal

package hal

import (
	"machine"

	"rtcore/display"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	adc    *machineADC
	t      *tinyGoTime
	panels *tinyGoPanels
}

// New returns a Pico 2 (RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Buttons: GP12 (A) and GP13 (B) to ground.
// Joystick: ADC0 (GP26) x, ADC1 (GP27) y.
// SSD1306: I2C0 on GP4 (SDA) / GP5 (SCL).
// SSD1331: SPI0 on GP18 (SCK) / GP19 (SDO), DC GP20, RST GP21, CS GP17.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	i2c := machine.I2C0
	i2cErr := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	})

	spi := machine.SPI0
	spiErr := spi.Configure(machine.SPIConfig{
		Frequency: 8 * machine.MHz,
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Mode:      0,
	})

	led := &pinLED{pin: ledPin}
	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    led,
		gpio:   newMachineGPIO(30, machine.LED, led),
		adc:    newMachineADC(machine.ADC0, machine.ADC1),
		t:      newTinyGoTime(),
		panels: &tinyGoPanels{
			i2c: i2c, i2cErr: i2cErr,
			spi: spi, spiErr: spiErr,
			dc: machine.GP20, rst: machine.GP21, cs: machine.GP17,
		},
	}
}

func (h *tinyGoHAL) Logger() Logger         { return h.logger }
func (h *tinyGoHAL) LED() LED               { return h.led }
func (h *tinyGoHAL) GPIO() GPIO             { return h.gpio }
func (h *tinyGoHAL) ADC() ADC               { return h.adc }
func (h *tinyGoHAL) Time() Time             { return h.t }
func (h *tinyGoHAL) Panels() display.Driver { return h.panels }
