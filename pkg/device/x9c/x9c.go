// Package x9c drives the X9C10X family of digitally adjustable
// potentiometers over three GPIO lines.
//
// The chip exposes an up/down counter: while CS is held low, each
// falling edge on INC moves the wiper one tap in the direction picked
// by UD. The driver tracks the wiper position in memory; Calibrate
// re-establishes a known zero by stepping down past the bottom of the
// range.
package x9c

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/robotalks/dyno.go/pkg/device"
)

// Pins names the GPIO lines wired to the chip.
type Pins struct {
	CS  string
	Inc string
	UD  string
}

// edge spacing on INC; the chip wants about 1us between transitions
const pulseWidth = 5 * time.Microsecond

// Dev is an X9C10X attached to GPIO lines.
type Dev struct {
	MaxOhms uint32

	cs  gpio.PinIO
	inc gpio.PinIO
	ud  gpio.PinIO
	pos int
}

// Open locates the GPIO lines and prepares the chip with the wiper
// calibrated to zero.
func Open(pins Pins, maxOhms uint32) (*Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	d := &Dev{MaxOhms: maxOhms}
	for _, p := range []struct {
		name string
		pin  *gpio.PinIO
	}{
		{pins.CS, &d.cs},
		{pins.Inc, &d.inc},
		{pins.UD, &d.ud},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return nil, fmt.Errorf("no GPIO pin %q", p.name)
		}
		*p.pin = pin
	}
	if err := d.cs.Out(gpio.High); err != nil {
		return nil, err
	}
	if err := d.inc.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := d.ud.Out(gpio.Low); err != nil {
		return nil, err
	}
	d.Calibrate()
	return d, nil
}

func (d *Dev) set(pin gpio.PinIO, lv gpio.Level) {
	if err := pin.Out(lv); err != nil {
		glog.Errorf("x9c %s: %v", pin.Name(), err)
	}
}

// step pulses the wiper n taps in one direction. The burst ends by
// raising CS while INC is low, which skips the chip's nonvolatile
// store.
func (d *Dev) step(up bool, n int) {
	if n <= 0 {
		return
	}
	d.set(d.ud, gpio.Level(up))
	d.set(d.cs, gpio.Low)
	time.Sleep(pulseWidth)
	for i := 0; i < n; i++ {
		d.set(d.inc, gpio.High)
		time.Sleep(pulseWidth)
		d.set(d.inc, gpio.Low)
		time.Sleep(pulseWidth)
	}
	d.set(d.cs, gpio.High)
}

// SetPosition implements device.Pot.
func (d *Dev) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > device.MaxPosition {
		pos = device.MaxPosition
	}
	delta := pos - d.pos
	if delta > 0 {
		d.step(true, delta)
	} else if delta < 0 {
		d.step(false, -delta)
	}
	d.pos = pos
}

// Increment implements device.Pot.
func (d *Dev) Increment() {
	if d.pos >= device.MaxPosition {
		return
	}
	d.step(true, 1)
	d.pos++
}

// Position implements device.Pot.
func (d *Dev) Position() int { return d.pos }

// Ohms implements device.Pot.
func (d *Dev) Ohms() uint32 { return device.Ohms(d.MaxOhms, d.pos) }

// Calibrate implements device.Pot. It walks down the whole tap range
// so the hardware wiper and the tracked position agree at zero.
func (d *Dev) Calibrate() {
	d.step(false, device.Positions)
	d.pos = 0
}

var _ device.Pot = (*Dev)(nil)
