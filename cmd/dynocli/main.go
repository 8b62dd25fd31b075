package main

import (
	"github.com/robotalks/dyno.go/pkg/cli/sh"

	_ "github.com/robotalks/dyno.go/pkg/cli/cmds/throttle"
)

//go-build: CGO_ENABLED=0

func init() {
	sh.SetupFlags()
}

func main() {
	sh.Main()
}
