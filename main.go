package main

import (
	"os"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/server"
	"github.com/go-home-io/driverhost/settings"
	"github.com/go-home-io/driverhost/systems/logger"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flags.ErrHelp == flagsErr.Type {
			os.Exit(0)
		}

		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		logger.NewConsoleLogger(&logger.ConstructLogger{Level: options.LogLevel}).
			Fatal("Failed to load configuration", err, common.LogSystemToken, "host")
	}

	s.SystemLogger().Info("Starting driver host", common.LogSystemToken, "host")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start driver host", err, common.LogSystemToken, "host")
	}

	srv.Start()
}
