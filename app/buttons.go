package app

import (
	"fmt"

	"rtcore/hal"
	"rtcore/kernel"
)

type button struct {
	pin  hal.GPIOPin
	prev bool
	node *kernel.Node
}

// buttons detects presses on active-low inputs and defers each press to
// the button's handler through the queue.
type buttons struct {
	q    *kernel.Queue
	list []*button
}

func newButtons(gpio hal.GPIO, q *kernel.Queue, pins []int, handlers []func()) (*buttons, error) {
	if len(pins) != len(handlers) {
		return nil, fmt.Errorf("app: %d button pins, %d handlers", len(pins), len(handlers))
	}
	b := &buttons{q: q}
	for i, id := range pins {
		var pin hal.GPIOPin
		if gpio != nil {
			pin = gpio.Pin(id)
		}
		if pin == nil {
			return nil, fmt.Errorf("app: button pin %d not available", id)
		}
		if err := pin.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, err
		}
		// released reads high
		b.list = append(b.list, &button{pin: pin, prev: true, node: kernel.NewNode(handlers[i])})
	}
	return b, nil
}

// poll runs in timer context: it only reads pins and enqueues.
func (b *buttons) poll() {
	for _, btn := range b.list {
		level, err := btn.pin.Read()
		if err != nil {
			continue
		}
		if level != btn.prev && !level {
			b.q.Enqueue(btn.node)
		}
		btn.prev = level
	}
}
