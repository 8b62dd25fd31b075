package throttle

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/dyno.go/pkg/device"
	fx "github.com/robotalks/dyno.go/pkg/framework"
	"github.com/robotalks/dyno.go/pkg/timer"
)

// HeartbeatInterval is the lamp toggle period.
const HeartbeatInterval = time.Second

// Heartbeat toggles a lamp at idle priority. A lamp that stops
// blinking means the loop is hung.
type Heartbeat struct {
	Interval time.Duration

	lamp device.Lamp
	iv   timer.Interval
}

// NewHeartbeat creates a Heartbeat.
func NewHeartbeat(lamp device.Lamp) *Heartbeat {
	return &Heartbeat{Interval: HeartbeatInterval, lamp: lamp}
}

// AddToLoop implements framework.LoopAdder.
func (h *Heartbeat) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvIdle, h)
}

// Control implements framework.Controller.
func (h *Heartbeat) Control(cc fx.ControlContext) error {
	now := cc.Time()
	if h.iv.Expired(now) {
		if err := h.lamp.Toggle(); err != nil {
			glog.Warningf("heartbeat: %v", err)
		}
		h.iv = timer.New(h.Interval)
		h.iv.Start(now)
	}
	return nil
}
