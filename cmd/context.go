package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/pnlreport"
	"github.com/google/subcommands"
)

type contextCmd struct {
	inputFlags
	output string
}

func (*contextCmd) Name() string     { return "context" }
func (*contextCmd) Synopsis() string { return "print the report context as JSON" }
func (*contextCmd) Usage() string {
	return `pnlr context [-p <positions>] [-scenarios <file>] [-s <shock>]... [-o <file>]

  Prints every value computed for the report (totals, positions, scenarios,
  findings and texts) as a JSON document, for other tools to consume.
`
}

func (c *contextCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *contextCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.merge(cfg)

	rc, _, err := c.build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := pnlreport.EncodeReportContext(w, rc); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report context: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
