package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type reportCmd struct {
	inputFlags
	output string
	open   bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the HTML profit and loss report" }
func (*reportCmd) Usage() string {
	return `pnlr report [-p <positions>] [-scenarios <file>] [-s <shock>]... [-o <file>] [-open]

  Computes the profit and loss of the positions, evaluates the scenarios and
  writes a self-contained HTML report.

Usage Examples:
# Uses data/portfolio_positions.xlsx and writes reports/portfolio_report.html
$ pnlr report

# Adds two price shock scenarios and opens the report
$ pnlr report -s -5% -s +5% -open
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.inputFlags.SetFlags(f)
	f.StringVar(&c.output, "o", "", "Output HTML file. Defaults to the configured report.output.")
	f.BoolVar(&c.open, "open", false, "Open the report in the default browser once written.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	c.merge(cfg)
	cfg.Report.Output = pick(c.output, cfg.Report.Output)

	rc, _, err := c.build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	path, err := writeReport(cfg.Report.Output, rc, c.options(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("报告已生成: %s\n", path)

	if c.open {
		if err := openBrowser(path); err != nil {
			log.Warn().Err(err).Msg("could not open the report")
		}
	}
	return subcommands.ExitSuccess
}

// writeReport renders rc into the file at path, creating its directory, and
// returns the absolute path of the file.
func writeReport(path string, rc *pnlreport.ReportContext, opts renderer.Options) (string, error) {
	opts.Generated = time.Now()
	var buf bytes.Buffer
	if err := renderer.HTML(&buf, rc, opts); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid output path %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("could not create output directory: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("could not write report %q: %w", abs, err)
	}
	log.Debug().Str("file", abs).Int("bytes", buf.Len()).Msg("report written")
	return abs, nil
}

// openBrowser opens a local file with the default application of the system.
func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
