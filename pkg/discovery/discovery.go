// Package discovery announces controllers over mDNS and finds them
// from the client side.
package discovery

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/enbility/zeroconf/v2"
	"github.com/golang/glog"

	fx "github.com/robotalks/dyno.go/pkg/framework"
	"github.com/robotalks/dyno.go/pkg/throttle"
)

// Service is the mDNS service type controllers register under.
const Service = "_dyno-throttle._tcp"

// Domain is the mDNS domain.
const Domain = "local."

// DefaultTimeout bounds a discovery round.
const DefaultTimeout = 2 * time.Second

// Announcer registers a controller endpoint on the local network for
// as long as it runs.
type Announcer struct {
	Ref  throttle.DeviceRef
	Port int
	Meta throttle.Meta
}

// NewAnnouncer creates an Announcer for a controller reachable on the
// given TCP port.
func NewAnnouncer(ref throttle.DeviceRef, port int, meta throttle.Meta) *Announcer {
	return &Announcer{Ref: ref, Port: port, Meta: meta}
}

// AddToLoop implements framework.LoopAdder.
func (a *Announcer) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(a)
}

// Run implements framework.Runnable. The registration is withdrawn
// when the context ends.
func (a *Announcer) Run(ctx context.Context) error {
	instance := a.Ref.Type + "-" + a.Ref.ID
	server, err := zeroconf.Register(instance, Service, Domain, a.Port, a.txt(), nil)
	if err != nil {
		return err
	}
	glog.Infof("announcing %s on port %d", a.Ref.Name(), a.Port)
	<-ctx.Done()
	server.Shutdown()
	return nil
}

func (a *Announcer) txt() []string {
	txt := []string{
		"type=" + a.Ref.Type,
		"id=" + a.Ref.ID,
		"ver=" + a.Meta.Version,
	}
	if a.Meta.Session != "" {
		txt = append(txt, "session="+a.Meta.Session)
	}
	return txt
}

// Instance is one discovered controller endpoint.
type Instance struct {
	Ref     throttle.DeviceRef
	Host    string
	Port    int
	Addrs   []string
	Version string
}

// URL renders a transport URL for dialing the instance, preferring a
// concrete address over the advertised host name.
func (in Instance) URL() string {
	host := in.Host
	if len(in.Addrs) > 0 {
		host = in.Addrs[0]
	}
	return "tcp://" + net.JoinHostPort(host, strconv.Itoa(in.Port))
}

// Discover collects controllers announced on the local network until
// timeout elapses or the context ends.
func Discover(ctx context.Context, timeout time.Duration) ([]Instance, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	go func() {
		if err := zeroconf.Browse(ctx, Service, Domain, entries, removed); err != nil {
			glog.Warningf("browse: %v", err)
		}
	}()

	var res []Instance
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return res, nil
			}
			var addrs []string
			for _, ip := range entry.AddrIPv4 {
				addrs = append(addrs, ip.String())
			}
			for _, ip := range entry.AddrIPv6 {
				addrs = append(addrs, ip.String())
			}
			if in, ok := instanceFrom(entry.HostName, entry.Port, entry.Text, addrs); ok {
				res = append(res, in)
			}
		case <-removed:
		case <-ctx.Done():
			return res, nil
		}
	}
}

// instanceFrom assembles an Instance from announcement fields. The
// TXT records must carry the controller ref.
func instanceFrom(host string, port int, txt []string, addrs []string) (Instance, bool) {
	attrs := parseTXT(txt)
	in := Instance{
		Ref:     throttle.DeviceRef{Type: attrs["type"], ID: attrs["id"]},
		Host:    host,
		Port:    port,
		Addrs:   addrs,
		Version: attrs["ver"],
	}
	return in, in.Ref.IsValid()
}

func parseTXT(txt []string) map[string]string {
	attrs := make(map[string]string, len(txt))
	for _, kv := range txt {
		if i := strings.IndexByte(kv, '='); i > 0 {
			attrs[kv[:i]] = kv[i+1:]
		}
	}
	return attrs
}
