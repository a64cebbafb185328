// Command pnlr computes the profit and loss of a portfolio snapshot and
// publishes it as an HTML report.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pnlreport/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Answers shell completion requests and exits, does nothing otherwise.
	cmd.Completion(commander).Complete("pnlr")

	flag.Parse()
	cmd.SetupLogger("info", *cmd.Verbose)

	if name := flag.Arg(0); name != "" && !cmd.Known(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
