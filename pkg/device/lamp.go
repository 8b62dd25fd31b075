package device

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type gpioLamp struct {
	pin gpio.PinIO
	on  bool
}

// OpenLamp locates a GPIO pin by name and returns it as a Lamp,
// initially off.
func OpenLamp(name string) (Lamp, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin %q", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &gpioLamp{pin: pin}, nil
}

// Toggle implements Lamp.
func (l *gpioLamp) Toggle() error {
	l.on = !l.on
	return l.pin.Out(gpio.Level(l.on))
}
