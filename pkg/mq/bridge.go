package mq

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/dyno.go/pkg/framework"
	"github.com/robotalks/dyno.go/pkg/throttle"
)

// Bridge puts a controller on the broker. It holds a retained meta
// document while connected, feeds lines arriving on the cmd channel
// into the control loop, and mirrors telemetry and protocol events
// out as CBOR.
type Bridge struct {
	Queue *Queue
	Ref   throttle.DeviceRef

	metaJSON []byte
}

// NewBridge creates a Bridge for the controller identified by ref.
// The broker will retain a cleared meta document if the process dies
// without saying goodbye.
func NewBridge(brokerURL string, ref throttle.DeviceRef, meta throttle.Meta) (*Bridge, error) {
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+ref.Name()+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("dyno:" + ref.Name())
	}
	b := &Bridge{
		Queue:    NewQueue(opts, topicPrefix),
		Ref:      ref,
		metaJSON: metaJSON,
	}
	b.Queue.OnConnect = func(*Queue) { b.announce() }
	return b, nil
}

func (b *Bridge) announce() {
	b.Queue.PubWith(b.Ref.Name()+"/meta", b.metaJSON, 1, true)
}

// AddToLoop implements framework.LoopAdder.
func (b *Bridge) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(b)
}

// Run implements framework.Runnable. It subscribes the cmd channel
// before connecting so the connect-time replay picks it up, then
// clears the retained meta on the way out.
func (b *Bridge) Run(ctx context.Context) error {
	lc := fx.LoopCtlFrom(ctx)
	b.Queue.Sub(b.Ref.Name()+"/cmd", func(topic string, payload []byte) {
		for _, line := range commandLines(payload) {
			lc.PostMessage(&throttle.LineMessage{Text: line})
		}
		lc.TriggerNext()
	})
	b.Queue.Connect()
	<-ctx.Done()
	b.Queue.PubWith(b.Ref.Name()+"/meta", nil, 1, true)
	return b.Queue.Close()
}

// OnSample implements throttle.Observer.
func (b *Bridge) OnSample(s throttle.Sample) {
	data, err := EncodeSample(s)
	if err != nil {
		glog.Errorf("encode sample: %v", err)
		return
	}
	b.Queue.Pub(b.Ref.Name()+"/data", data)
}

// OnEvent implements throttle.Observer.
func (b *Bridge) OnEvent(ev throttle.Event) {
	data, err := EncodeEvent(ev)
	if err != nil {
		glog.Errorf("encode event: %v", err)
		return
	}
	b.Queue.Pub(b.Ref.Name()+"/event", data)
}

// commandLines splits a cmd payload into terminated lines, dropping
// blanks. A payload may carry one line or a whole script.
func commandLines(payload []byte) (out []string) {
	for _, ln := range strings.Split(string(payload), "\n") {
		ln = strings.TrimRight(ln, "\r")
		if ln == "" {
			continue
		}
		out = append(out, ln+"\n")
	}
	return
}

var _ throttle.Observer = (*Bridge)(nil)
