package main

import (
	"github.com/robotalks/sbus.go/pkg/cli/sh"

	_ "github.com/robotalks/sbus.go/pkg/cli/cmds/decode"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
