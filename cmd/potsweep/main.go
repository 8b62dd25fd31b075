package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"time"

	"github.com/robotalks/dyno.go/pkg/device"
	"github.com/robotalks/dyno.go/pkg/device/x9c"
)

var (
	sim     bool
	maxOhms uint = device.DefaultMaxOhms
	stepMS       = 100
	pinCS        = "GPIO4"
	pinInc       = "GPIO3"
	pinUD        = "GPIO2"
)

func init() {
	flag.BoolVar(&sim, "sim", sim, "Use the simulated potentiometer.")
	flag.UintVar(&maxOhms, "max-ohms", maxOhms, "Potentiometer end-to-end resistance.")
	flag.IntVar(&stepMS, "step-ms", stepMS, "Delay between steps.")
	flag.StringVar(&pinCS, "pin-cs", pinCS, "Chip select GPIO pin.")
	flag.StringVar(&pinInc, "pin-inc", pinInc, "Increment GPIO pin.")
	flag.StringVar(&pinUD, "pin-ud", pinUD, "Up/down GPIO pin.")
}

func main() {
	flag.Parse()

	var pot device.Pot
	if sim {
		pot = device.NewSimPot(uint32(maxOhms))
	} else {
		dev, err := x9c.Open(x9c.Pins{CS: pinCS, Inc: pinInc, UD: pinUD}, uint32(maxOhms))
		if err != nil {
			log.Fatalln(err)
		}
		pot = dev
	}

	for {
		log.Printf("pos=%d ohms=%d", pot.Position(), pot.Ohms())
		if pot.Position() == device.MaxPosition {
			pot.Calibrate()
		} else {
			pot.Increment()
		}
		time.Sleep(time.Duration(stepMS) * time.Millisecond)
	}
}
