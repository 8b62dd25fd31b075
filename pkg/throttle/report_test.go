package throttle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recObserver struct {
	samples []Sample
	events  []Event
}

func (o *recObserver) OnSample(s Sample) { o.samples = append(o.samples, s) }
func (o *recObserver) OnEvent(ev Event)  { o.events = append(o.events, ev) }

func (o *recObserver) kinds() (kinds []string) {
	for _, ev := range o.events {
		kinds = append(kinds, ev.Kind)
	}
	return
}

func TestTelemetryCadence(t *testing.T) {
	r := newRig()
	r.boot()
	r.run(1550)
	require.Equal(t, []string{
		"D0.00,0,0,500",
		"D0.00,0,0,1000",
		"D0.00,0,0,1500",
	}, r.port.takeLines())
}

func TestForcedReportOrdering(t *testing.T) {
	r := newRig()
	r.boot()
	r.port.feed("r\n")
	r.run(4)
	require.Equal(t, []string{"R", "D0.00,0,0,3", "E"}, r.port.takeLines())
}

func TestMoveSuppressesTelemetryUntilSettled(t *testing.T) {
	r := newRig()
	r.boot()
	r.pot.SetPosition(20)
	r.run(49)
	require.Empty(t, dataLines(r.port.takeLines()))
	r.run(5)
	data := dataLines(r.port.takeLines())
	require.Len(t, data, 1)
	require.Contains(t, data[0], ",20,")
}

func TestObserverMirroring(t *testing.T) {
	r := newRig()
	rec := &recObserver{}
	r.ctl.Observe(rec)

	r.cycle()
	require.Equal(t, []string{EventBanner, EventEnd}, rec.kinds())
	require.Len(t, rec.samples, 1)
	require.Equal(t, 0, rec.samples[0].Position)
	require.Equal(t, uint64(0), rec.samples[0].Timestamp)

	r.port.feed("x\n")
	r.run(5)
	require.Equal(t, []string{
		EventBanner, EventEnd,
		EventReceived, EventReject, EventEnd,
	}, rec.kinds())
	require.Equal(t, "  Unknown command type", rec.events[3].Text)
	require.Len(t, rec.samples, 1, "a rejected command produces no report")
}

func TestObserverSeesOverride(t *testing.T) {
	r := newRig()
	rec := &recObserver{}
	r.ctl.Observe(rec)
	r.boot()
	r.port.feed("w 10000\n")
	r.run(50)
	r.port.feed("q\n")
	r.run(2)
	kinds := rec.kinds()
	require.Equal(t, EventOverride, kinds[len(kinds)-1])
}
