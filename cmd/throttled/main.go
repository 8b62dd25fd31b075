package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"
	"log"
	"net"

	"github.com/robotalks/dyno.go/pkg/discovery"
	fx "github.com/robotalks/dyno.go/pkg/framework"
	"github.com/robotalks/dyno.go/pkg/mq"
	"github.com/robotalks/dyno.go/pkg/throttle"
	"github.com/robotalks/dyno.go/pkg/transport"
)

var configFile string

func init() {
	throttle.SetupFlags()
	flag.StringVar(&configFile, "config", configFile, "YAML configuration file.")
}

func main() {
	flag.Parse()

	conf := throttle.NewConfig()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			log.Fatalln(err)
		}
	}
	if err := conf.Validate(); err != nil {
		log.Fatalln(err)
	}

	pot, err := conf.NewPot()
	if err != nil {
		log.Fatalln(err)
	}
	port, err := conf.NewPort()
	if err != nil {
		log.Fatalln(err)
	}
	lamp, err := conf.NewLamp()
	if err != nil {
		log.Fatalln(err)
	}

	ctl := conf.NewController(pot, conf.NewSampler(pot), port)

	loop := fx.NewLoop()
	loop.Interval = conf.Tick()

	if conf.MQTTBrokerURL != "" {
		bridge, err := mq.NewBridge(conf.MQTTBrokerURL, conf.Ref(), conf.Meta())
		if err != nil {
			log.Fatalln(err)
		}
		ctl.Observe(bridge)
		loop.Add(bridge)
	}
	loop.Add(ctl)
	if lamp != nil {
		loop.Add(throttle.NewHeartbeat(lamp))
	}

	greeting := func(w io.Writer) {
		transport.WriteLine(w, throttle.Banner())
	}
	var announcePort int
	switch srv := port.(type) {
	case *transport.Server:
		srv.Greeting = greeting
		announcePort = srv.Addr().(*net.TCPAddr).Port
	case *transport.WSServer:
		srv.Greeting = greeting
		announcePort = srv.Addr().(*net.TCPAddr).Port
	}
	if conf.Announce && announcePort != 0 {
		loop.Add(discovery.NewAnnouncer(conf.Ref(), announcePort, conf.Meta()))
	}
	if r, ok := port.(fx.Runnable); ok {
		loop.AddRunnable(r)
	}

	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		log.Fatalln(err)
	}
}
