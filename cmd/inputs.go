package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/pnlreport"
	"github.com/etnz/pnlreport/config"
	"github.com/etnz/pnlreport/renderer"
	"github.com/rs/zerolog/log"
)

// shockList collects repeated -s flags.
type shockList []string

func (l *shockList) String() string { return strings.Join(*l, ",") }
func (l *shockList) Set(v string) error {
	if _, err := pnlreport.ParseShock(v); err != nil {
		return err
	}
	*l = append(*l, strings.TrimSpace(v))
	return nil
}

// inputFlags are the flags shared by the commands building a report. Empty
// values fall back to the configuration.
type inputFlags struct {
	positions     string
	scenarios     string
	scenarioPath  string
	narrative     string
	narrativeText string
	quality       string
	qualityText   string
	title         string
	currency      string
	shocks        shockList
}

func (in *inputFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&in.positions, "p", "", "Positions file (.xlsx or .csv). Defaults to the configured inputs.positions.")
	f.StringVar(&in.scenarios, "scenarios", "", "Scenario source JSON file. A missing file means no scenarios.")
	f.StringVar(&in.scenarioPath, "scenario-path", "", "JSONPath locating the scenario source in the file, e.g. $.result")
	f.StringVar(&in.narrative, "narrative", "", "File with an external narrative text (markdown).")
	f.StringVar(&in.narrativeText, "narrative-text", "", "External narrative text, overrides -narrative.")
	f.StringVar(&in.quality, "quality", "", "File with an external data-quality text (markdown).")
	f.StringVar(&in.qualityText, "quality-text", "", "External data-quality text, overrides -quality.")
	f.StringVar(&in.title, "title", "", "Report title.")
	f.StringVar(&in.currency, "currency", "", "Currency label shown next to amounts.")
	f.Var(&in.shocks, "s", "Price shock scenario, repeatable: -5% is relative, 2 is an absolute price change.")
}

// merge applies the flags set over the configuration.
func (in *inputFlags) merge(cfg *config.Config) {
	cfg.Inputs.Positions = pick(in.positions, cfg.Inputs.Positions)
	cfg.Inputs.Scenarios = pick(in.scenarios, cfg.Inputs.Scenarios)
	cfg.Inputs.ScenarioPath = pick(in.scenarioPath, cfg.Inputs.ScenarioPath)
	cfg.Inputs.Narrative = pick(in.narrative, cfg.Inputs.Narrative)
	cfg.Inputs.Quality = pick(in.quality, cfg.Inputs.Quality)
	cfg.Report.Title = pick(in.title, cfg.Report.Title)
	cfg.Report.Currency = pick(in.currency, cfg.Report.Currency)
	if len(in.shocks) > 0 {
		cfg.Report.Shocks = in.shocks
	}
}

func pick(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// loadInput reads every input of a report.
func (in *inputFlags) loadInput(cfg *config.Config) (pnlreport.Input, error) {
	var input pnlreport.Input

	path := positionsFile(cfg.Inputs.Positions)
	records, err := pnlreport.LoadPositions(path)
	if err != nil {
		return input, err
	}
	log.Debug().Str("file", path).Int("records", len(records)).Msg("positions loaded")
	input.Records = records

	src, err := pnlreport.LoadScenarioSource(cfg.Inputs.Scenarios, cfg.Inputs.ScenarioPath)
	if err != nil {
		return input, err
	}
	input.Scenarios = src

	if input.Shocks, err = cfg.ParseShocks(); err != nil {
		return input, err
	}

	if input.Texts.Narrative, err = text(in.narrativeText, cfg.Inputs.Narrative); err != nil {
		return input, err
	}
	if input.Texts.Quality, err = text(in.qualityText, cfg.Inputs.Quality); err != nil {
		return input, err
	}
	return input, nil
}

// build loads the inputs and runs the report pipeline.
func (in *inputFlags) build(cfg *config.Config) (*pnlreport.ReportContext, pnlreport.Input, error) {
	input, err := in.loadInput(cfg)
	if err != nil {
		return nil, input, err
	}
	rc := pnlreport.Build(input)
	for _, f := range rc.Findings {
		log.Debug().Str("component", "quality").Msg(f)
	}
	return rc, input, nil
}

func (in *inputFlags) options(cfg *config.Config) renderer.Options {
	return renderer.Options{Title: cfg.Report.Title, Currency: cfg.Report.Currency}
}

// positionsFile returns path, or its .csv sibling when path is a missing
// workbook and the sibling exists.
func positionsFile(path string) string {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return path
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		return path
	}
	csv := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	if _, err := os.Stat(csv); err == nil {
		log.Debug().Str("file", csv).Msg("workbook not found, using csv")
		return csv
	}
	return path
}

// text returns the literal text if any, the content of the file otherwise.
func text(literal, file string) (string, error) {
	if strings.TrimSpace(literal) != "" {
		return literal, nil
	}
	t, err := pnlreport.ReadText(file)
	if err != nil {
		return "", fmt.Errorf("could not read external text: %w", err)
	}
	return t, nil
}
