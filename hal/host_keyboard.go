//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollKeys maps the keyboard onto the board: A and B hold the buttons down,
// the arrow keys deflect the joystick to its extents.
func pollKeys(h *hostHAL) {
	if h.btnA != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyA) {
			h.btnA.set(true)
		}
		if inpututil.IsKeyJustReleased(ebiten.KeyA) {
			h.btnA.set(false)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		h.btnB.set(true)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyB) {
		h.btnB.set(false)
	}

	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy--
	}
	h.adc.deflect(dx, dy)
}
