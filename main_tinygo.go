//go:build tinygo && baremetal

package main

import (
	"rtcore/app"
	"rtcore/display"
	"rtcore/hal"
)

func main() {
	app.Run(hal.New(), app.Config{
		Demo: app.DemoShapes,
		Panels: []app.Panel{
			{Kind: display.SSD1306I2C, Unit: display.ISU1},
			{Kind: display.SSD1331SPI, Unit: display.ISU0},
		},
		// Pico 2: LEDs on GP6..GP9, GP10/11/14 jumpered to GP15/16/22.
		LEDPins:  [4]int{6, 7, 8, 9},
		CountOut: [3]int{10, 11, 14},
		CountIn:  [3]int{15, 16, 22},
	})
}
