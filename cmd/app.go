// Package cmd implements the pnlr command line application.
package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/pnlreport/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&reportCmd{}, "report")
	c.Register(&summaryCmd{}, "report")
	c.Register(&contextCmd{}, "report")
	c.Register(&serveCmd{}, "report")

	c.Register(&assistCmd{}, "assist")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the YAML configuration file")

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "Enable verbose (debug) logging")

// loadConfig loads the configuration selected by the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	SetupLogger(cfg.Logging.Level, *Verbose)
	return cfg, nil
}
