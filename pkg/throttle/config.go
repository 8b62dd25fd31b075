package throttle

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/dyno.go/pkg/device"
	"github.com/robotalks/dyno.go/pkg/device/x9c"
	"github.com/robotalks/dyno.go/pkg/transport"
)

// Config provides options to assemble a throttle mapper. Timing knobs
// are plain integers so the same shape works for flags and YAML.
type Config struct {
	Type        string            `yaml:"type,omitempty"`
	ID          string            `yaml:"id,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`

	// Device is the operator transport URL, e.g.
	// serial:///dev/ttyUSB0?baud=115200, tcp://:9550,
	// ws://:9551/throttle. Empty runs without a local transport,
	// accepting remote lines only.
	Device string `yaml:"device,omitempty"`
	Echo   bool   `yaml:"echo"`

	// Sim selects the in-memory potentiometer. Otherwise the X9C
	// driver opens the named GPIO pins.
	Sim     bool   `yaml:"sim,omitempty"`
	MaxOhms uint   `yaml:"max_ohms,omitempty"`
	PinCS   string `yaml:"pin_cs,omitempty"`
	PinInc  string `yaml:"pin_inc,omitempty"`
	PinUD   string `yaml:"pin_ud,omitempty"`
	PinLamp string `yaml:"pin_lamp,omitempty"`

	LineLimit     int `yaml:"line_limit,omitempty"`
	LineTimeoutMS int `yaml:"line_timeout_ms,omitempty"`
	SettleMS      int `yaml:"settle_ms,omitempty"`
	CadenceMS     int `yaml:"cadence_ms,omitempty"`
	TickUS        int `yaml:"tick_us,omitempty"`

	// MQTTBrokerURL enables the bus bridge,
	// e.g. mqtt://host:port/topic-prefix. Empty disables.
	MQTTBrokerURL string `yaml:"mqtt,omitempty"`
	// Announce publishes the device over mDNS.
	Announce bool `yaml:"announce,omitempty"`
}

var defaultConfig = Config{
	Type:          "throttle",
	Echo:          true,
	Sim:           false,
	MaxOhms:       device.DefaultMaxOhms,
	PinCS:         "GPIO4",
	PinInc:        "GPIO3",
	PinUD:         "GPIO2",
	PinLamp:       "GPIO13",
	LineLimit:     DefaultLineLimit,
	LineTimeoutMS: 1000,
	SettleMS:      50,
	CadenceMS:     500,
	TickUS:        1000,
	Announce:      true,
}

func init() {
	if val := os.Getenv("DYNO_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("DYNO_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
	if val := os.Getenv("DYNO_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Type, "type", defaultConfig.Type, "Device type.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID, defaults to the machine ID.")
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Operator transport URL.")
	flag.BoolVar(&defaultConfig.Echo, "echo", defaultConfig.Echo, "Echo received lines back.")
	flag.BoolVar(&defaultConfig.Sim, "sim", defaultConfig.Sim, "Use the simulated potentiometer.")
	flag.UintVar(&defaultConfig.MaxOhms, "max-ohms", defaultConfig.MaxOhms, "Potentiometer end-to-end resistance.")
	flag.StringVar(&defaultConfig.PinCS, "pin-cs", defaultConfig.PinCS, "Chip select GPIO pin.")
	flag.StringVar(&defaultConfig.PinInc, "pin-inc", defaultConfig.PinInc, "Increment GPIO pin.")
	flag.StringVar(&defaultConfig.PinUD, "pin-ud", defaultConfig.PinUD, "Up/down GPIO pin.")
	flag.StringVar(&defaultConfig.PinLamp, "pin-lamp", defaultConfig.PinLamp, "Heartbeat lamp GPIO pin, empty disables.")
	flag.IntVar(&defaultConfig.LineLimit, "line-limit", defaultConfig.LineLimit, "Command line capacity in bytes.")
	flag.IntVar(&defaultConfig.LineTimeoutMS, "line-timeout-ms", defaultConfig.LineTimeoutMS, "Inactivity timeout abandoning a partial line.")
	flag.IntVar(&defaultConfig.SettleMS, "settle-ms", defaultConfig.SettleMS, "Sampler settling window after a wiper move.")
	flag.IntVar(&defaultConfig.CadenceMS, "cadence-ms", defaultConfig.CadenceMS, "Telemetry report period.")
	flag.IntVar(&defaultConfig.TickUS, "tick-us", defaultConfig.TickUS, "Control loop tick.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty disables the bridge.")
	flag.BoolVar(&defaultConfig.Announce, "announce", defaultConfig.Announce, "Announce the device over mDNS.")
	flag.StringVar(&defaultConfig.Description, "description", defaultConfig.Description, "Device description published in metadata.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LoadFile merges a YAML file over the config. Unknown keys are
// rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// Validate fills derived defaults and rejects inconsistent settings.
func (c *Config) Validate() error {
	if c.Type == "" {
		c.Type = defaultConfig.Type
	}
	if c.ID == "" {
		id, err := machineid.ID()
		if err != nil {
			return fmt.Errorf("machine id: %w", err)
		}
		c.ID = id
	}
	if c.LineLimit <= 1 {
		return fmt.Errorf("line-limit must exceed 1, got %d", c.LineLimit)
	}
	if c.TickUS <= 0 {
		return fmt.Errorf("tick-us must be positive, got %d", c.TickUS)
	}
	if c.SettleMS < 0 || c.CadenceMS <= 0 || c.LineTimeoutMS <= 0 {
		return fmt.Errorf("timing knobs must be positive")
	}
	if !c.Sim && (c.PinCS == "" || c.PinInc == "" || c.PinUD == "") {
		return fmt.Errorf("pot pins must be named unless -sim is set")
	}
	return nil
}

// Ref returns the device reference.
func (c *Config) Ref() DeviceRef {
	return DeviceRef{Type: c.Type, ID: c.ID}
}

// sessionID identifies this process run in published metadata.
var sessionID = uuid.NewString()

// Meta returns the device metadata published on registration.
func (c *Config) Meta() Meta {
	return Meta{
		Description: c.Description,
		Labels:      c.Labels,
		Version:     Version,
		Session:     sessionID,
		Device:      c.Device,
	}
}

// Tick returns the loop interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickUS) * time.Microsecond
}

// NewPot opens the configured potentiometer.
func (c *Config) NewPot() (device.Pot, error) {
	if c.Sim {
		return device.NewSimPot(uint32(c.MaxOhms)), nil
	}
	return x9c.Open(x9c.Pins{CS: c.PinCS, Inc: c.PinInc, UD: c.PinUD}, uint32(c.MaxOhms))
}

// NewSampler opens the analog sampler watching the wiper.
func (c *Config) NewSampler(pot device.Pot) device.Sampler {
	return &device.SimSampler{Pot: pot}
}

// NewLamp opens the heartbeat lamp, nil when disabled.
func (c *Config) NewLamp() (device.Lamp, error) {
	if c.PinLamp == "" {
		return nil, nil
	}
	if c.Sim {
		return &device.SimLamp{}, nil
	}
	return device.OpenLamp(c.PinLamp)
}

// NewPort opens the operator transport, nil when no device URL is
// configured.
func (c *Config) NewPort() (transport.Port, error) {
	if c.Device == "" {
		return nil, nil
	}
	return transport.Open(c.Device)
}

// NewController creates the controller wired to the given devices.
func (c *Config) NewController(pot device.Pot, sampler device.Sampler, port transport.Port) *Controller {
	ctl := NewController(pot, sampler, port)
	ctl.Cadence = time.Duration(c.CadenceMS) * time.Millisecond
	ctl.Settle = time.Duration(c.SettleMS) * time.Millisecond
	ctl.LineLimit = c.LineLimit
	ctl.LineTimeout = time.Duration(c.LineTimeoutMS) * time.Millisecond
	ctl.Echo = c.Echo
	return ctl
}
