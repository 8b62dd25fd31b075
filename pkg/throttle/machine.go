package throttle

import (
	"time"

	"github.com/robotalks/dyno.go/pkg/device"
	"github.com/robotalks/dyno.go/pkg/timer"
	"github.com/robotalks/dyno.go/pkg/wire"
)

// advance runs one transition of the command sequencer. A pending
// line is consumed only when Idle; lines completing in any other
// phase are left for the override path and dropped at end of cycle.
func (c *Controller) advance(now time.Time) {
	switch c.state.Kind {
	case Idle:
		line := c.state.Line
		if line == "" {
			return
		}
		c.state.Line = ""
		c.emitMarker(now, wire.MarkerReceived, EventReceived)
		cmd, err := ParseCommand(line)
		if err != nil {
			c.emitReject(now, err)
		} else {
			c.apply(cmd, now)
		}
		// Assign through the controller: a reset command replaced
		// c.state with a fresh value, and Executing must land there.
		c.state.Kind = Executing

	case Executing:
		st := c.state
		if !st.Wait.Expired(now) {
			st.Kind = Waiting
			return
		}
		if st.Steps != 0 {
			st.Kind = Linear
			return
		}
		st.Finished = true
		st.Kind = Idle

	case Linear:
		st := c.state
		if st.Step.Expired(now) {
			pos := c.pot.Position()
			if st.Target > pos {
				c.pot.SetPosition(pos + 1)
			} else {
				c.pot.SetPosition(pos - 1)
			}
			st.Steps--
			st.Step.Start(now)
		}
		if st.Steps == 0 {
			st.Finished = true
			st.Kind = Idle
		}

	case Waiting:
		st := c.state
		if st.Wait.Expired(now) {
			st.Finished = true
			st.Kind = Idle
		}
	}
}

// apply performs a validated command. Ramp and wait arm timers the
// sequencer picks up on its next transition out of Executing.
func (c *Controller) apply(cmd Command, now time.Time) {
	st := c.state
	switch cmd := cmd.(type) {
	case RampTo:
		steps := abs(cmd.Target - c.pot.Position())
		if steps == 0 {
			return
		}
		st.Target = cmd.Target
		st.Steps = steps
		st.Step = timer.New(cmd.Duration / time.Duration(steps))
		st.Step.Start(now)
	case SetTo:
		c.pot.SetPosition(cmd.Target)
	case StepBy:
		pos := c.pot.Position() + cmd.Delta
		if pos < 0 || pos > device.MaxPosition {
			c.emitReject(now, Reject{Reason: reasonThrottle})
			return
		}
		c.pot.SetPosition(pos)
	case Wait:
		st.Wait = timer.New(cmd.Duration)
		st.Wait.Start(now)
	case Report:
		st.Report = true
	case Reset:
		c.reset()
	}
}

// reset drives the wiper home and rebuilds the application state from
// scratch. The position memory feeding the settling gate lives on the
// Controller and survives, so telemetry picks up right where the
// reconstructed state left it.
func (c *Controller) reset() {
	c.pot.SetPosition(0)
	c.state = newState(timer.New(c.Cadence), timer.New(c.Settle))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
