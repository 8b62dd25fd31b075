package throttle

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dyno.go/pkg/cli/sh"
)

func forward(c *ishell.Context, verb string) {
	sh.Send(c, strings.Join(append([]string{verb}, c.Args...), " "))
}

var (
	// RampCmd exposes the t command.
	RampCmd = ishell.Cmd{
		Name:    "ramp",
		Aliases: []string{"t"},
		Help:    "TARGET [MS|null]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("target position expected"))
				return
			}
			forward(c, "t")
		}),
	}

	// StepCmd exposes the s command.
	StepCmd = ishell.Cmd{
		Name:    "step",
		Aliases: []string{"s"},
		Help:    "DELTA",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("step delta expected"))
				return
			}
			forward(c, "s")
		}),
	}

	// WaitCmd exposes the w command.
	WaitCmd = ishell.Cmd{
		Name:    "wait",
		Aliases: []string{"w"},
		Help:    "MS",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("duration expected"))
				return
			}
			forward(c, "w")
		}),
	}

	// ReportCmd exposes the r command.
	ReportCmd = ishell.Cmd{
		Name:    "report",
		Aliases: []string{"r"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			forward(c, "r")
		}),
	}

	// ResetCmd exposes the q command.
	ResetCmd = ishell.Cmd{
		Name:    "reset",
		Aliases: []string{"q"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			forward(c, "q")
		}),
	}

	// SendCmd sends a raw command line.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "LINE ...",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("command line expected"))
				return
			}
			sh.Send(c, strings.Join(c.Args, " "))
		}),
	}
)

func init() {
	sh.AddCmds(
		&RampCmd,
		&StepCmd,
		&WaitCmd,
		&ReportCmd,
		&ResetCmd,
		&SendCmd,
	)
}
