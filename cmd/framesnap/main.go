//go:build !tinygo

// Command framesnap renders one PNG per primitive kind for each panel, so
// the rasterizer output can be inspected without hardware.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rtcore/display"
	"rtcore/internal/snapshot"
)

const defaultOutDir = "frames"

type sample struct {
	name  string
	shape display.Shape
	style display.Style
}

func samples(size display.Vector) []sample {
	center := size.Div(2)
	white := display.Style{Color: display.White}
	return []sample{
		{"point", display.Point(center), white},
		{"line", display.Line(display.V(2, 2), size.Sub(display.V(3, 3))), white},
		{"steep", display.Line(display.V(center.X-4, 2), display.V(center.X+4, size.Y-3)), white},
		{"circle", display.Circle(center, uint32(center.Y-4)), white},
		{"rect", display.Rectangle(display.V(4, 4), size.Sub(display.V(5, 5))), white},
		{"offset", display.Rectangle(display.V(0, 0), display.V(10, 10)), display.Style{Color: display.White, Offset: center}},
		{"text", display.Text(display.V(2, 12), "rtcore"), white},
	}
}

// pngDriver hands out backends that save every flush to the next path.
type pngDriver struct {
	scale int
	path  string
	saved []string
}

func (d *pngDriver) Open(display.PanelKind, display.Unit) (display.Backend, error) {
	return (*pngBackend)(d), nil
}

type pngBackend pngDriver

func (b *pngBackend) Flush(f *display.Frame) error {
	if b.path == "" {
		return nil
	}
	if err := snapshot.SavePNG(b.path, f, b.scale); err != nil {
		return fmt.Errorf("save %q: %w", b.path, err)
	}
	b.saved = append(b.saved, b.path)
	return nil
}

func (b *pngBackend) Close() error { return nil }

func main() {
	var outDir string
	var scale int
	var panels string
	flag.StringVar(&outDir, "out", defaultOutDir, "Output directory.")
	flag.IntVar(&scale, "scale", 4, "Pixels per panel pixel.")
	flag.StringVar(&panels, "panels", "ssd1306,ssd1331", "Comma-separated panels to render.")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}
	kinds, err := parsePanels(panels)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	saved, err := run(outDir, scale, kinds)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	for _, p := range saved {
		fmt.Println(p)
	}
}

func parsePanels(s string) ([]display.PanelKind, error) {
	var kinds []display.PanelKind
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "ssd1306":
			kinds = append(kinds, display.SSD1306I2C)
		case "ssd1331":
			kinds = append(kinds, display.SSD1331SPI)
		case "":
		default:
			return nil, fmt.Errorf("unknown panel %q", name)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no panels selected")
	}
	return kinds, nil
}

func run(outDir string, scale int, kinds []display.PanelKind) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %q: %w", outDir, err)
	}
	drv := &pngDriver{scale: scale}
	ctx := display.NewContext(drv)

	for _, kind := range kinds {
		d, err := ctx.Open(kind, display.ISU0)
		if err != nil {
			return drv.saved, err
		}
		prefix := strings.SplitN(kind.String(), "/", 2)[0]
		for i, s := range samples(d.Frame().Size()) {
			id, err := d.Add(s.shape, s.style)
			if err != nil {
				return drv.saved, fmt.Errorf("%s %s: %w", kind, s.name, err)
			}
			if err := d.SetBackground(display.Black); err != nil {
				return drv.saved, err
			}
			drv.path = filepath.Join(outDir, fmt.Sprintf("%s-%02d-%s.png", prefix, i, s.name))
			if err := d.Draw(); err != nil {
				return drv.saved, fmt.Errorf("%s %s: %w", kind, s.name, err)
			}
			if err := d.Free(id); err != nil {
				return drv.saved, err
			}
		}
		drv.path = ""
		if err := d.Close(); err != nil {
			return drv.saved, err
		}
	}
	return drv.saved, nil
}
