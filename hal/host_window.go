//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"

	"rtcore/internal/buildinfo"
)

const (
	windowScale  = 4
	panelGap     = 8
	windowWidth  = 128 + panelGap + 96
	windowHeight = 64
)

// RunWindow starts a desktop window showing every open panel side by side.
// A and B are the board buttons; the arrow keys deflect the joystick.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, hc HostConfig) error {
	h, err := newHostHAL(hc)
	if err != nil {
		return err
	}
	defer h.Close()
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("rtcore (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(windowWidth*windowScale, windowHeight*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h      *hostHAL
	step   func() error
	panels []*ebiten.Image
}

func (g *hostGame) Update() error {
	pollKeys(g.h)
	g.h.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	imgs := g.h.mem.images()
	x := 0
	for i, img := range imgs {
		b := img.Bounds()
		if i >= len(g.panels) {
			g.panels = append(g.panels, nil)
		}
		if g.panels[i] == nil || g.panels[i].Bounds() != b {
			if g.panels[i] != nil {
				g.panels[i].Deallocate()
			}
			g.panels[i] = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.panels[i].WritePixels(img.Pix)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), 0)
		screen.DrawImage(g.panels[i], op)
		x += b.Dx() + panelGap
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
