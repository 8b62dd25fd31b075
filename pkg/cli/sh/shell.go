package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dyno.go/pkg/discovery"
)

// Shell provides the ishell backed operator console.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *Config
	Sess   *Session
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps a command func requiring a session.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Sess == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Send sends one command line on the current session, reporting a
// missing acknowledgment as a command error.
func Send(c *ishell.Context, line string) {
	s := ShellFrom(c)
	if s.Sess == nil {
		c.Err(fmt.Errorf("not connected"))
		return
	}
	if err := s.Sess.Send(line); err != nil {
		c.Err(err)
	}
}

// FormatInstance prints a discovered instance for display.
func FormatInstance(in discovery.Instance) string {
	parts := []string{in.Ref.Name()}
	if in.Version != "" {
		parts = append(parts, "v"+in.Version)
	}
	parts = append(parts, in.URL())
	return strings.Join(parts, " ")
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DiscoverInstances finds controllers on the local network.
func (s *Shell) DiscoverInstances(filter func(discovery.Instance) bool) ([]discovery.Instance, error) {
	instances, err := discovery.Discover(context.TODO(), s.Config.DiscoverTimeout)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		items := make([]discovery.Instance, 0, len(instances))
		for _, in := range instances {
			if filter(in) {
				items = append(items, in)
			}
		}
		instances = items
	}
	return instances, nil
}

// SelectInstance discovers controllers and asks for a choice.
func (s *Shell) SelectInstance(filter func(discovery.Instance) bool) (*discovery.Instance, error) {
	instances, err := s.DiscoverInstances(filter)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, nil
	}
	var index int
	if len(instances) > 1 {
		if !s.Interactive {
			return nil, fmt.Errorf("more than 1 controllers discovered in non-interactive mode")
		}
		items := make([]string, len(instances))
		for n, in := range instances {
			items[n] = FormatInstance(in)
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}
	return &instances[index], nil
}

// Connect opens a session on a transport URL, replacing any current
// session.
func (s *Shell) Connect(rawURL string) error {
	sess, err := Dial(rawURL, func(line string) {
		s.Shell.Println(line)
	})
	if err != nil {
		return err
	}
	if s.Sess != nil {
		s.Sess.Close()
	}
	s.Sess = sess
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", rawURL))
	return nil
}

// Disconnect closes the current session.
func (s *Shell) Disconnect() {
	if s.Sess != nil {
		s.Sess.Close()
		s.Sess = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.URL != "" {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.URL)
		}
		if err := s.Connect(s.Config.URL); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.URL, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// DiscoverCmd finds controllers on the local network.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			instances, err := s.DiscoverInstances(nil)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if len(instances) == 0 {
					instances = []discovery.Instance{}
				}
				out, err := json.Marshal(instances)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(instances) == 0 {
				c.Println("No controllers found")
				return
			}
			for _, in := range instances {
				c.Println(FormatInstance(in))
			}
		},
	}

	// ConnectCmd connects a controller by URL or discovered name.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "URL | [TYPE|ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 && strings.Contains(c.Args[0], "://") {
				if err := s.Connect(c.Args[0]); err != nil {
					c.Err(err)
				}
				return
			}
			var filter func(discovery.Instance) bool
			if len(c.Args) > 0 {
				arg := c.Args[0]
				filter = func(in discovery.Instance) bool {
					return in.Ref.Type == arg || in.Ref.ID == arg
				}
			}
			in, err := s.SelectInstance(filter)
			if err != nil {
				c.Err(err)
				return
			}
			if in == nil {
				c.Err(fmt.Errorf("no controller discovered"))
				return
			}
			if err := s.Connect(in.URL()); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current controller.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
