//go:build !tinygo && !linux

package hal

import "fmt"

func newPeriphPanels(busName string) (periphDriver, error) {
	return nil, fmt.Errorf("hal: periph panels on %q: %w", busName, ErrNotImplemented)
}
