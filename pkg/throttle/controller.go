package throttle

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/dyno.go/pkg/device"
	fx "github.com/robotalks/dyno.go/pkg/framework"
	"github.com/robotalks/dyno.go/pkg/timer"
	"github.com/robotalks/dyno.go/pkg/transport"
	"github.com/robotalks/dyno.go/pkg/wire"
)

// Defaults for the controller knobs.
const (
	DefaultLineLimit   = 32
	DefaultLineTimeout = time.Second
	DefaultCadence     = 500 * time.Millisecond
	DefaultSettle      = 50 * time.Millisecond
)

// Banner is the greeting line announcing the protocol revision.
func Banner() string {
	return "Throttle Mapper Ver. " + Version
}

// Controller owns the whole throttle mapper poll cycle. It registers
// itself at four priority levels: sampling, telemetry, command
// dispatch, and the override path, in that order within each loop
// iteration.
type Controller struct {
	// Cadence paces periodic telemetry, Settle delays reports after
	// a wiper move. LineLimit and LineTimeout bound line assembly.
	Cadence     time.Duration
	Settle      time.Duration
	LineLimit   int
	LineTimeout time.Duration
	Echo        bool

	pot       device.Pot
	sampler   device.Sampler
	port      transport.Port
	observers Observers

	assembler *wire.Assembler
	state     *State
	remote    []string

	started time.Time
	lastPos int
}

// NewController creates a Controller with default knobs. The port may
// be nil for an observer-only rig.
func NewController(pot device.Pot, sampler device.Sampler, port transport.Port) *Controller {
	return &Controller{
		Cadence:     DefaultCadence,
		Settle:      DefaultSettle,
		LineLimit:   DefaultLineLimit,
		LineTimeout: DefaultLineTimeout,
		Echo:        true,
		pot:         pot,
		sampler:     sampler,
		port:        port,
	}
}

// Observe registers observers mirroring everything emitted on the
// wire.
func (c *Controller) Observe(obs ...Observer) *Controller {
	c.observers = append(c.observers, obs...)
	return c
}

// AddToLoop implements framework.LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvSense, fx.ControlFunc(c.sense))
	loop.AddController(fx.PrLvReport, fx.ControlFunc(c.report))
	loop.AddController(fx.PrLvControl, fx.ControlFunc(c.dispatch))
	loop.AddController(fx.PrLvOverride, fx.ControlFunc(c.override))
}

// millis is the sample clock, counted from the first cycle.
func (c *Controller) millis(now time.Time) uint64 {
	return uint64(now.Sub(c.started) / time.Millisecond)
}

// sense samples the wiper once per cycle. A position delta rearms the
// settling window and forces the next settled report. The first cycle
// also constructs the runtime state and greets the operator.
func (c *Controller) sense(cc fx.ControlContext) error {
	now := cc.Time()
	if c.state == nil {
		c.started = now
		c.assembler = wire.NewAssembler(c.LineLimit, c.LineTimeout)
		c.state = newState(timer.New(c.Cadence), timer.New(c.Settle))
		c.greet(now)
	}
	st := c.state
	st.Sample = Sample{
		Volts:     float64(c.sampler.ReadRaw()) / device.ADCMax * device.RefVolts,
		Position:  c.pot.Position(),
		Ohms:      c.pot.Ohms(),
		Timestamp: c.millis(now),
	}
	if st.Sample.Position != c.lastPos {
		st.Settle.Start(now)
		st.Report = true
	}
	c.lastPos = st.Sample.Position
	return nil
}

// report emits settle-gated telemetry, then the end marker for a
// command that finished on the previous cycle. The ordering lets one
// final measurement go out before a command is declared done.
func (c *Controller) report(cc fx.ControlContext) error {
	now := cc.Time()
	st := c.state
	if st.Settle.Expired(now) && (st.Cadence.Expired(now) || st.Report) {
		st.Cadence.Start(now)
		c.writeLine(wire.FormatData(st.Sample.Volts, st.Sample.Position, st.Sample.Ohms, st.Sample.Timestamp))
		c.observers.OnSample(st.Sample)
		st.Report = false
	}
	if st.Finished {
		st.Finished = false
		c.emitMarker(now, wire.MarkerEnd, EventEnd)
	}
	return nil
}

// dispatch assembles operator input and runs the command sequencer.
// Remote lines queue behind the transport and feed in one per cycle
// while the transport has no line in progress.
func (c *Controller) dispatch(cc fx.ControlContext) error {
	now := cc.Time()
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(*LineMessage); ok {
			mctx.MessageTaken()
			c.remote = append(c.remote, msg.Text)
		}
	}))
	var line string
	var ok bool
	if c.port != nil {
		line, ok = c.assembler.Poll(now, c.port)
	}
	if !ok && len(c.remote) > 0 && (c.port == nil || c.assembler.Pending() == 0) {
		line, ok = c.remote[0], true
		c.remote = c.remote[1:]
	}
	if ok {
		c.complete(line)
	}
	c.advance(now)
	return nil
}

// complete latches a finished line for the sequencer and the override
// path, echoing it raw when enabled.
func (c *Controller) complete(line string) {
	if line[0] == 'q' {
		c.state.Override = true
	}
	if c.Echo {
		c.echo(line)
	}
	c.state.Line = line
}

// override services the high-priority path after regular dispatch. A
// line led by the reset letter preempts whatever the sequencer is
// doing. A line the sequencer could not take this cycle is dropped.
func (c *Controller) override(cc fx.ControlContext) error {
	now := cc.Time()
	if c.state.Override {
		line := c.state.Line
		c.emitMarker(now, wire.MarkerOverride, EventOverride)
		if cmd, err := ParseCommand(line); err == nil {
			c.apply(cmd, now)
		}
	}
	c.state.Line = ""
	return nil
}

func (c *Controller) greet(now time.Time) {
	c.writeLine(Banner())
	c.observers.OnEvent(Event{Kind: EventBanner, Text: Banner(), Timestamp: c.millis(now)})
	c.emitMarker(now, wire.MarkerEnd, EventEnd)
}

// emitMarker prints a one-letter protocol marker on its own line and
// mirrors it to observers.
func (c *Controller) emitMarker(now time.Time, marker byte, kind string) {
	c.writeLine(string(rune(marker)))
	c.observers.OnEvent(Event{Kind: kind, Timestamp: c.millis(now)})
}

// emitReject prints a rejection verbatim and mirrors it to observers.
func (c *Controller) emitReject(now time.Time, err error) {
	c.writeLine(err.Error())
	c.observers.OnEvent(Event{Kind: EventReject, Text: err.Error(), Timestamp: c.millis(now)})
}

func (c *Controller) writeLine(text string) {
	if c.port == nil {
		return
	}
	if err := transport.WriteLine(c.port, text); err != nil {
		glog.Warningf("write %q: %v", text, err)
	}
}

func (c *Controller) echo(line string) {
	if c.port == nil {
		return
	}
	if _, err := c.port.Write([]byte(line)); err != nil {
		glog.Warningf("echo: %v", err)
	}
}
