//go:build !tinygo

package hal

import (
	"io"

	"rtcore/display"
)

type periphDriver interface {
	display.Driver
	io.Closer
}

// columnToPages converts the column-major packed frame layout into the
// page-major layout SSD1306 uses in horizontal addressing mode:
// byte page*width+x holds rows page*8..page*8+7 of column x.
func columnToPages(dst, src []byte, width, height int) {
	pages := height / 8
	for x := 0; x < width; x++ {
		for page := 0; page < pages; page++ {
			dst[page*width+x] = src[x*pages+page]
		}
	}
}
