//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"rtcore/app"
	"rtcore/display"
	"rtcore/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var hc hal.HostConfig
	var appCfg app.Config
	var demo, panels string
	var pollMs uint
	flag.StringVar(&demo, "demo", "shapes", "Demo to run: shapes, joystick, gpio, adc or eint.")
	flag.StringVar(&panels, "panels", "", "Comma-separated panels, e.g. ssd1306@1,ssd1331@0 (default ssd1306@1).")
	flag.UintVar(&pollMs, "poll-ms", 0, "Button poll period in ms (0 = demo default).")
	flag.BoolVar(&appCfg.Crosshair, "crosshair", false, "Draw the joystick reading on the first panel.")
	flag.BoolVar(&appCfg.Console, "console", false, "Mirror the gpio demo's log onto the first panel.")
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 1000, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&hc.SerialPort, "serial", "", "Mirror the log to this serial device.")
	flag.IntVar(&hc.SerialBaud, "baud", 115200, "Serial mirror baud rate.")
	flag.BoolVar(&hc.Periph, "periph", false, "Drive a real SSD1306 through periph.io (Linux).")
	flag.StringVar(&hc.I2CBus, "i2c-bus", "", "periph.io I2C bus name (default first bus).")
	flag.StringVar(&hc.SnapshotDir, "snapshot-dir", "", "Save every flushed frame as a PNG here.")
	flag.IntVar(&hc.SnapshotScale, "snapshot-scale", 4, "Snapshot pixels per panel pixel.")
	flag.DurationVar(&hc.AutoPress, "auto-press", 0, "Press button A once per period (e.g. 2s).")
	flag.Parse()

	d, err := app.ParseDemo(demo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	appCfg.Demo = d
	appCfg.ButtonPollMs = uint32(pollMs)
	if appCfg.Panels, err = parsePanels(panels); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	newApp := func(h hal.HAL) func() error { return app.New(h, appCfg) }

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg, hc); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parsePanels reads "kind@unit" pairs; the unit defaults to ISU1.
func parsePanels(s string) ([]app.Panel, error) {
	var out []app.Panel
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, unit, _ := strings.Cut(item, "@")
		p := app.Panel{Unit: display.ISU1}
		switch name {
		case "ssd1306":
			p.Kind = display.SSD1306I2C
		case "ssd1331":
			p.Kind = display.SSD1331SPI
		default:
			return nil, fmt.Errorf("unknown panel %q", name)
		}
		if unit != "" {
			var n uint8
			if _, err := fmt.Sscanf(unit, "%d", &n); err != nil || n > uint8(display.ISU5) {
				return nil, fmt.Errorf("bad unit in %q", item)
			}
			p.Unit = display.Unit(n)
		}
		out = append(out, p)
	}
	return out, nil
}
