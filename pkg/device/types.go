// Package device abstracts the hardware the throttle core drives: the
// digitally adjustable potentiometer, the analog sampler watching its
// wiper, and the heartbeat lamp.
package device

// MaxPosition is the highest wiper position. Drivers expose positions
// in [0, MaxPosition].
const MaxPosition = 99

// Positions is the number of discrete wiper taps.
const Positions = MaxPosition + 1

// DefaultMaxOhms is the end-to-end resistance of the stock 100k part.
const DefaultMaxOhms = 100000

// ADCMax is the full-scale count of the analog sampler.
const ADCMax = 1023

// RefVolts is the sampler reference voltage corresponding to ADCMax.
const RefVolts = 5.0

// Pot is a digitally adjustable potentiometer.
type Pot interface {
	// SetPosition moves the wiper to pos, one tap at a time.
	// Values outside [0, MaxPosition] are clamped.
	SetPosition(pos int)
	// Increment moves the wiper one tap up, saturating at the top.
	Increment()
	// Position returns the current wiper position.
	Position() int
	// Ohms returns the wiper resistance at the current position.
	Ohms() uint32
	// Calibrate re-establishes a known zero without trusting the
	// tracked position.
	Calibrate()
}

// Sampler reads the raw analog level of the wiper output.
type Sampler interface {
	// ReadRaw returns the current conversion in ADC counts.
	ReadRaw() int
}

// Lamp is the heartbeat indicator.
type Lamp interface {
	// Toggle flips the lamp state.
	Toggle() error
}

// Ohms converts a wiper position to resistance for a pot with the
// given end-to-end resistance, rounding to the nearest ohm.
func Ohms(maxOhms uint32, pos int) uint32 {
	if pos < 0 {
		pos = 0
	}
	if pos > MaxPosition {
		pos = MaxPosition
	}
	return uint32((uint64(maxOhms)*uint64(pos) + MaxPosition/2) / MaxPosition)
}
