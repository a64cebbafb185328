package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/agent"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// defaultAdjustments are simulated when no shock is requested.
var defaultAdjustments = []string{"-5%", "+5%"}

// assistCmd is the subcommand for the AI analyst.
type assistCmd struct {
	inputFlags
	output      string
	model       string
	interactive bool
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "write the report commentary with the Gemini analyst"
}
func (*assistCmd) Usage() string {
	return `pnlr assist [-i] [-model <name>] [-s <shock>]... [question...]

  Asks the Gemini analyst to review the portfolio (it reads the totals, the
  data-quality findings and simulates the price shocks) and writes the report
  with its answer as the commentary. If the analyst fails, the generated
  commentary is kept.

  With -i, starts an interactive session with the analyst instead.

  The Gemini client reads its credentials from GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output HTML file. Defaults to the configured report.output.")
	f.StringVar(&c.model, "model", "", "Gemini model. Defaults to the configured assist.model.")
	f.BoolVar(&c.interactive, "i", false, "Start an interactive session.")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.merge(cfg)
	cfg.Report.Output = pick(c.output, cfg.Report.Output)
	cfg.Assist.Model = pick(c.model, cfg.Assist.Model)
	question := strings.Join(f.Args(), " ")

	rc, input, err := c.build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	positions, _ := pnlreport.Normalize(input.Records)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	analyst := agent.NewAnalyst(cfg.Assist.Model, agent.NewTools(positions, rc))

	adjustments := cfg.Report.Shocks
	if len(adjustments) == 0 {
		adjustments = defaultAdjustments
	}
	prompt := agent.Prompt(rc, question, adjustments)

	if c.interactive {
		a := agent.New(os.Stdout, os.Stdin, analyst)
		a.Render = renderMarkdown
		if err := a.Run(ctx, client, prompt); err != nil {
			fmt.Fprintln(os.Stderr, "Agent failed:", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	comment, err := agent.Comment(ctx, client, analyst, prompt)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("analyst failed, keeping the generated commentary")
	case comment == "":
		log.Warn().Msg("analyst returned no commentary, keeping the generated one")
	case rc.NarrativeSource == pnlreport.External:
		log.Info().Msg("an external narrative is configured, the analyst commentary is only printed")
	default:
		input.Texts.Narrative = comment
		rc = pnlreport.Build(input)
	}
	if comment != "" {
		printMarkdown(comment)
	}

	path, err := writeReport(cfg.Report.Output, rc, c.options(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("报告已生成: %s\n", path)
	return subcommands.ExitSuccess
}
