package sh

import (
	"flag"
	"os"
	"time"

	"github.com/robotalks/dyno.go/pkg/discovery"
)

// Config provides common options for reaching controllers.
type Config struct {
	// URL connects a controller directly, e.g. tcp://host:9550,
	// ws://host:9551/throttle or serial:///dev/ttyUSB0.
	URL string

	// DiscoverTimeout bounds an mDNS discovery round.
	DiscoverTimeout time.Duration
}

var defaultConfig = Config{
	DiscoverTimeout: discovery.DefaultTimeout,
}

func init() {
	if val := os.Getenv("DYNO_URL"); val != "" {
		defaultConfig.URL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "url", defaultConfig.URL, "Controller URL to connect.")
	flag.DurationVar(&defaultConfig.DiscoverTimeout, "discover-timeout", defaultConfig.DiscoverTimeout, "Discovery window.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
