package throttle

import (
	fx "github.com/robotalks/dyno.go/pkg/framework"
)

// Sample is one potentiometer measurement.
type Sample struct {
	Volts     float64 `cbor:"v"`
	Position  int     `cbor:"pos"`
	Ohms      uint32  `cbor:"ohms"`
	Timestamp uint64  `cbor:"ts"`
}

// Event kinds mirrored to observers.
const (
	EventBanner   = "banner"
	EventReceived = "received"
	EventEnd      = "end"
	EventOverride = "override"
	EventReject   = "reject"
)

// Event is a protocol occurrence mirrored off the command link.
type Event struct {
	Kind      string `cbor:"kind"`
	Text      string `cbor:"text,omitempty"`
	Timestamp uint64 `cbor:"ts"`
}

// Observer receives telemetry and protocol events as they are
// emitted.
type Observer interface {
	OnSample(Sample)
	OnEvent(Event)
}

// Observers broadcasts to a set of observers.
type Observers []Observer

// OnSample implements Observer.
func (os Observers) OnSample(s Sample) {
	for _, o := range os {
		o.OnSample(s)
	}
}

// OnEvent implements Observer.
func (os Observers) OnEvent(ev Event) {
	for _, o := range os {
		o.OnEvent(ev)
	}
}

// LineMessage injects a command line into the control loop from
// outside the transport, as if the operator had typed it.
type LineMessage struct {
	Text string
}

// NewMessage implements framework.Message.
func (m *LineMessage) NewMessage() fx.Message {
	return &LineMessage{}
}
