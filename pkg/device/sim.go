package device

import (
	"github.com/golang/glog"
)

// SimPot is an in-memory potentiometer for running the controller
// without hardware attached.
type SimPot struct {
	MaxOhms uint32

	pos int
}

// NewSimPot creates a simulated pot with the given end-to-end
// resistance, wiper at zero.
func NewSimPot(maxOhms uint32) *SimPot {
	return &SimPot{MaxOhms: maxOhms}
}

// SetPosition implements Pot.
func (p *SimPot) SetPosition(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > MaxPosition {
		pos = MaxPosition
	}
	p.pos = pos
}

// Increment implements Pot.
func (p *SimPot) Increment() {
	if p.pos < MaxPosition {
		p.pos++
	}
}

// Position implements Pot.
func (p *SimPot) Position() int { return p.pos }

// Ohms implements Pot.
func (p *SimPot) Ohms() uint32 { return Ohms(p.MaxOhms, p.pos) }

// Calibrate implements Pot.
func (p *SimPot) Calibrate() { p.pos = 0 }

// SimSampler derives ADC counts from a pot wiper so reported voltage
// tracks position in simulation.
type SimSampler struct {
	Pot Pot
}

// ReadRaw implements Sampler.
func (s *SimSampler) ReadRaw() int {
	return s.Pot.Position() * ADCMax / MaxPosition
}

// SimLamp is a heartbeat lamp that only shows up in verbose logs.
type SimLamp struct {
	on bool
}

// Toggle implements Lamp.
func (l *SimLamp) Toggle() error {
	l.on = !l.on
	glog.V(4).Infof("lamp %v", l.on)
	return nil
}

var (
	_ Pot     = (*SimPot)(nil)
	_ Sampler = (*SimSampler)(nil)
	_ Lamp    = (*SimLamp)(nil)
)
