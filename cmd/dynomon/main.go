package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/dyno.go/pkg/mq"
)

var (
	mqttURL = "mqtt://localhost:1883/dyno/"
)

func init() {
	if val := os.Getenv("DYNO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mq.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("#", mq.Handler(func(topic string, payload []byte) {
		switch {
		case strings.HasSuffix(topic, "/meta"):
			log.Printf("%s: %s", topic, string(payload))
		case strings.HasSuffix(topic, "/cmd"):
			log.Printf("%s: %q", topic, string(payload))
		case strings.HasSuffix(topic, "/data"):
			s, err := mq.DecodeSample(payload)
			if err != nil {
				log.Printf("%s: bad sample: %v", topic, err)
				return
			}
			log.Printf("%s: %.2fV pos=%d ohms=%d ts=%d", topic,
				s.Volts, s.Position, s.Ohms, s.Timestamp)
		case strings.HasSuffix(topic, "/event"):
			ev, err := mq.DecodeEvent(payload)
			if err != nil {
				log.Printf("%s: bad event: %v", topic, err)
				return
			}
			log.Printf("%s: [%s] %q ts=%d", topic, ev.Kind, ev.Text, ev.Timestamp)
		default:
			log.Printf("%s: %d bytes", topic, len(payload))
		}
	}))

	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
