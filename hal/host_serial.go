//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

func openSerialMirror(name string, baud int) (io.WriteCloser, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("hal: open serial %s: %w", name, err)
	}
	return port, nil
}
