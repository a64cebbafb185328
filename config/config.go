// Package config loads the settings of the pnlr command.
//
// Settings come, by increasing priority, from defaults, a YAML file, a .env
// file and PNLR_* environment variables. Command line flags override them
// all and are handled by the cmd package.
//
// Example pnlr.yaml:
//
//	report:
//	  title: 组合盈亏看板
//	  currency: CNY
//	  output: reports/portfolio_report.html
//	  shocks: ["-5%", "+5%"]
//	inputs:
//	  positions: data/portfolio_positions.xlsx
//	  scenarios: data/scenarios.json
//	  scenarioPath: $.result
//	assist:
//	  model: gemini-2.5-flash
//	serve:
//	  addr: 127.0.0.1:8080
//	logging:
//	  level: info
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/etnz/pnlreport"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding the file.
const EnvPrefix = "PNLR_"

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "pnlr.yaml"

type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Inputs  InputConfig   `yaml:"inputs"`
	Assist  AssistConfig  `yaml:"assist"`
	Serve   ServeConfig   `yaml:"serve"`
	Logging LoggingConfig `yaml:"logging"`
}

type ReportConfig struct {
	Title    string   `yaml:"title"`
	Currency string   `yaml:"currency"` // label shown next to amounts
	Output   string   `yaml:"output"`   // HTML file written by the report command
	Shocks   []string `yaml:"shocks"`   // price shocks, "-5%" or "2"
}

type InputConfig struct {
	Positions    string `yaml:"positions"`    // .xlsx or .csv
	Scenarios    string `yaml:"scenarios"`    // JSON scenario source, optional
	ScenarioPath string `yaml:"scenarioPath"` // JSONPath of the source inside the file
	Narrative    string `yaml:"narrative"`    // external narrative file, optional
	Quality      string `yaml:"quality"`      // external quality file, optional
}

type AssistConfig struct {
	Model string `yaml:"model"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // zerolog level name
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Report: ReportConfig{
			Title:  "组合盈亏看板",
			Output: "reports/portfolio_report.html",
		},
		Inputs: InputConfig{
			Positions:    "data/portfolio_positions.xlsx",
			ScenarioPath: "$",
		},
		Assist:  AssistConfig{Model: "gemini-2.5-flash"},
		Serve:   ServeConfig{Addr: "127.0.0.1:8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, applies the environment and
// validates the result. A missing file is not an error when path is the
// DefaultFile or empty.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	c := Default()
	if path == "" {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultFile:
	case err != nil:
		return nil, fmt.Errorf("could not read config file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("could not parse config file %q: %w", path, err)
		}
	}

	c.applyEnv(EnvPrefix)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the consistency of the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Inputs.Positions) == "" {
		return errors.New("inputs.positions must not be empty")
	}
	if strings.TrimSpace(c.Report.Output) == "" {
		return errors.New("report.output must not be empty")
	}
	if _, err := c.ParseShocks(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	if c.Serve.Addr == "" {
		return errors.New("serve.addr must not be empty")
	}
	return nil
}

// ParseShocks parses the configured price shocks.
func (c *Config) ParseShocks() ([]pnlreport.Shock, error) {
	shocks := make([]pnlreport.Shock, 0, len(c.Report.Shocks))
	for _, s := range c.Report.Shocks {
		shock, err := pnlreport.ParseShock(s)
		if err != nil {
			return nil, fmt.Errorf("invalid report.shocks: %w", err)
		}
		shocks = append(shocks, shock)
	}
	return shocks, nil
}

// applyEnv overrides the configuration with the environment variables
// starting with prefix.
func (c *Config) applyEnv(prefix string) {
	c.Report.Title = pick(os.Getenv(prefix+"TITLE"), c.Report.Title)
	c.Report.Currency = pick(os.Getenv(prefix+"CURRENCY"), c.Report.Currency)
	c.Report.Output = pick(os.Getenv(prefix+"OUTPUT"), c.Report.Output)
	if v := os.Getenv(prefix + "SHOCKS"); v != "" {
		c.Report.Shocks = splitList(v)
	}

	c.Inputs.Positions = pick(os.Getenv(prefix+"POSITIONS"), c.Inputs.Positions)
	c.Inputs.Scenarios = pick(os.Getenv(prefix+"SCENARIOS"), c.Inputs.Scenarios)
	c.Inputs.ScenarioPath = pick(os.Getenv(prefix+"SCENARIO_PATH"), c.Inputs.ScenarioPath)
	c.Inputs.Narrative = pick(os.Getenv(prefix+"NARRATIVE"), c.Inputs.Narrative)
	c.Inputs.Quality = pick(os.Getenv(prefix+"QUALITY"), c.Inputs.Quality)

	c.Assist.Model = pick(os.Getenv(prefix+"MODEL"), c.Assist.Model)
	c.Serve.Addr = pick(os.Getenv(prefix+"ADDR"), c.Serve.Addr)
	c.Logging.Level = pick(os.Getenv(prefix+"LOG_LEVEL"), c.Logging.Level)
}

func pick(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
