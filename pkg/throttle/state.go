package throttle

import (
	"github.com/robotalks/dyno.go/pkg/timer"
)

// StateKind enumerates the phases of the command sequencer.
type StateKind int

// Sequencer phases.
const (
	// Idle accepts the next command line.
	Idle StateKind = iota
	// Executing transitions back to Idle after a command finished,
	// emitting the end marker on the way.
	Executing
	// Waiting holds sequencing until the wait timer expires.
	Waiting
	// Linear steps the wiper one position per step interval until it
	// reaches the ramp target.
	Linear
)

func (k StateKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Executing:
		return "executing"
	case Waiting:
		return "waiting"
	case Linear:
		return "linear"
	}
	return "unknown"
}

// State is the whole mutable application state of the sequencer.
// Reset reconstructs it from scratch rather than patching fields.
type State struct {
	Kind StateKind

	// Line is the pending command line, consumed when Idle.
	Line string

	// Override latches a reset request to be honored out of band.
	Override bool

	// Target, Steps and Step drive a linear ramp. Linear holds only
	// while Steps remains above zero.
	Target int
	Steps  int
	Step   timer.Interval

	// Wait paces a hold.
	Wait timer.Interval

	// Cadence paces periodic telemetry, Settle spaces reads from the
	// converter, Report forces a report out of cadence, Finished
	// requests the end marker after the next report.
	Cadence  timer.Interval
	Settle   timer.Interval
	Report   bool
	Finished bool

	// Sample is the most recent converter reading.
	Sample Sample
}

// newState constructs the power-on state. Report starts set so the
// first sample after boot or reset goes out as soon as the converter
// settles.
func newState(cadence, settle timer.Interval) *State {
	return &State{
		Kind:    Idle,
		Cadence: cadence,
		Settle:  settle,
		Report:  true,
	}
}
