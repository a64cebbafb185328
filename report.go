package pnlreport

import "strings"

// TextSource tells where a report text comes from.
type TextSource string

const (
	External  TextSource = "external"
	Generated TextSource = "generated"
)

// ReportContext is everything a renderer needs to produce a report.
type ReportContext struct {
	Base      Totals
	Longs     Totals
	Shorts    Totals
	Positions []PositionMetrics
	Scenarios []Scenario
	Findings  []string

	Narrative       string
	NarrativeSource TextSource
	Quality         string
	QualitySource   TextSource
}

// Resolve picks the external text when it is not blank, the generated one
// otherwise.
func Resolve(external, generated string) string {
	if t := strings.TrimSpace(external); t != "" {
		return t
	}
	return generated
}

func source(external string) TextSource {
	if strings.TrimSpace(external) != "" {
		return External
	}
	return Generated
}

// Texts are the externally supplied texts of a report. Empty means not
// supplied.
type Texts struct {
	Narrative string
	Quality   string
}

// Assemble merges the pipeline results into a ReportContext.
func Assemble(a *Analytics, base Totals, scenarios []Scenario, findings Findings, external Texts) *ReportContext {
	return &ReportContext{
		Base:            base,
		Longs:           a.Longs,
		Shorts:          a.Shorts,
		Positions:       a.Positions,
		Scenarios:       scenarios,
		Findings:        findings.Strings(),
		Narrative:       Resolve(external.Narrative, Narrate(base, scenarios)),
		NarrativeSource: source(external.Narrative),
		Quality:         Resolve(external.Quality, QualityText(findings)),
		QualitySource:   source(external.Quality),
	}
}

// Input gathers the data of a report run.
type Input struct {
	Records []RawRecord
	// Scenarios is nil when no scenario source was supplied.
	Scenarios *ScenarioSource
	// Shocks are appended after the supplied scenarios.
	Shocks []Shock
	Texts  Texts
}

// Build runs the whole pipeline. It never fails: problems are reported in
// the context findings.
func Build(in Input) *ReportContext {
	positions, normFindings := Normalize(in.Records)
	a := Analyze(positions)

	base := a.Totals
	var records []ScenarioRecord
	var sourceFindings Findings
	if in.Scenarios != nil {
		sourceFindings = in.Scenarios.Findings
		if in.Scenarios.BaseTotals != nil {
			base = in.Scenarios.BaseTotals.Apply(base)
		}
		records = append(records, in.Scenarios.Scenarios...)
	}
	records = append(records, ShockScenarios(positions, in.Shocks)...)

	scenarios, scenarioFindings := EvaluateScenarios(base, records)
	findings := Assess(base, a.Positions, scenarios, normFindings, sourceFindings, scenarioFindings)
	return Assemble(a, base, scenarios, findings, in.Texts)
}
