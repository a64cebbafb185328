package cmd

import (
	"flag"

	"github.com/etnz/pnlreport/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog/log"
)

// Known reports whether name is a subcommand registered in c.
func Known(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}

// Completion describes the command line of c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		root.Sub[cmd.Name()] = &complete.Command{Flags: predictFlags(fs)}
	})
	if topic, ok := root.Sub["topic"]; ok {
		topics, err := docs.GetAllTopics()
		if err != nil {
			log.Debug().Err(err).Msg("no topic completion")
		}
		topic.Args = predict.Set(topics)
	}
	return root
}

// predictors of the flags with known values.
var valuePredictors = map[string]complete.Predictor{
	"p":             predict.Or(predict.Files("*.xlsx"), predict.Files("*.csv")),
	"scenarios":     predict.Files("*.json"),
	"narrative":     predict.Files("*.md"),
	"quality":       predict.Files("*.md"),
	"o":             predict.Files("*"),
	"config":        predict.Or(predict.Files("*.yaml"), predict.Files("*.yml")),
	"s":             predict.Set{"-10%", "-5%", "+5%", "+10%"},
	"scenario-path": predict.Set{"$", "$.result"},
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		switch {
		case valuePredictors[f.Name] != nil:
			flags[f.Name] = valuePredictors[f.Name]
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
