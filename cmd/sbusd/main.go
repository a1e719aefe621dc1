package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/sbus.go/pkg/framework"
	"github.com/robotalks/sbus.go/pkg/sbusd"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "config", configFile, "TOML config file, overlays flags.")
	sbusd.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := sbusd.NewConfig()
	if configFile != "" {
		if err := conf.LoadFile(configFile); err != nil {
			glog.Exit(err)
		}
	}
	daemon, err := conf.NewDaemon()
	if err != nil {
		glog.Exit(err)
	}
	if err := framework.NewRunner().HandleSignals().Go(daemon).Wait(); err != nil {
		glog.Exit(err)
	}
}
