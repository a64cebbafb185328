package pnlreport

import "strings"

// Portfolio level messages.
const (
	MsgNoValidPositions  = "no valid positions"
	MsgNoPercentReturn   = "cannot compute percentage return"
	MsgNoScenarios       = "no scenarios supplied"
	msgStalePrice        = "possible stale/missing price: %s"
	msgZeroPositionBasis = "zero cost basis for %s, pnl_pct set to 0"
)

// Assess inspects the baseline and its positions and returns every finding:
// the upstream ones (normalization, scenario evaluation) first, then the
// portfolio level checks. Duplicate messages are removed.
func Assess(base Totals, positions []PositionMetrics, scenarios []Scenario, upstream ...Findings) Findings {
	findings := Merge(upstream...)

	if base.CostBasis.IsZero() {
		findings.Add(Warning, MsgNoPercentReturn)
	}
	for _, p := range positions {
		if p.UnitPrice.IsZero() {
			findings.Add(Warning, msgStalePrice, p.Symbol)
		}
		if p.ZeroCostBasis {
			findings.Add(Warning, msgZeroPositionBasis, p.Symbol)
		}
	}
	if len(scenarios) == 0 {
		findings.Add(Info, MsgNoScenarios)
	}
	return findings.Dedup()
}

// QualityText is the generated quality section: one finding per line.
func QualityText(findings Findings) string {
	return strings.Join(findings.Strings(), "\n")
}
