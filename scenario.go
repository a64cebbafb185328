package pnlreport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrScenarioFormat reports a scenario source whose structure cannot be
// understood at all. It is the only fatal error of the report pipeline.
var ErrScenarioFormat = errors.New("malformed scenario source")

// Override is a partial Totals: nil fields are taken from a baseline.
type Override struct {
	MarketValue *Money   `json:"market_value,omitempty"`
	CostBasis   *Money   `json:"cost_basis,omitempty"`
	PnL         *Money   `json:"pnl,omitempty"`
	PnLPct      *Percent `json:"pnl_pct,omitempty"`
	WinCount    *int     `json:"win_count,omitempty"`
	LossCount   *int     `json:"loss_count,omitempty"`
	FlatCount   *int     `json:"flat_count,omitempty"`
}

// Apply returns base with every field set in o replaced.
func (o Override) Apply(base Totals) Totals {
	t := base
	if o.MarketValue != nil {
		t.MarketValue = *o.MarketValue
	}
	if o.CostBasis != nil {
		t.CostBasis = *o.CostBasis
	}
	if o.PnL != nil {
		t.PnL = *o.PnL
	}
	if o.PnLPct != nil {
		t.PnLPct = *o.PnLPct
	}
	if o.WinCount != nil {
		t.WinCount = *o.WinCount
	}
	if o.LossCount != nil {
		t.LossCount = *o.LossCount
	}
	if o.FlatCount != nil {
		t.FlatCount = *o.FlatCount
	}
	return t
}

// Full returns an Override that sets every field of t.
func Full(t Totals) Override {
	return Override{
		MarketValue: &t.MarketValue,
		CostBasis:   &t.CostBasis,
		PnL:         &t.PnL,
		PnLPct:      &t.PnLPct,
		WinCount:    &t.WinCount,
		LossCount:   &t.LossCount,
		FlatCount:   &t.FlatCount,
	}
}

// ScenarioRecord is a scenario as supplied by the user. Label is a pointer to
// tell a missing label from an empty one.
type ScenarioRecord struct {
	Label  *string  `json:"label"`
	Totals Override `json:"totals"`
	// Invalid explains why the record could not be decoded. Such a record is
	// excluded from the evaluation.
	Invalid string `json:"-"`
}

// NewScenarioRecord creates a labelled record.
func NewScenarioRecord(label string, totals Override) ScenarioRecord {
	return ScenarioRecord{Label: &label, Totals: totals}
}

// ScenarioSource is the whole scenario input: an optional override of the
// baseline and the ordered list of scenarios.
type ScenarioSource struct {
	BaseTotals *Override        `json:"base_totals,omitempty"`
	Scenarios  []ScenarioRecord `json:"scenarios"`
	// Findings are the problems met while decoding the source itself.
	Findings Findings `json:"-"`
}

// Scenario is an evaluated scenario, compared with the baseline.
type Scenario struct {
	Label       string
	Totals      Totals
	PnLDelta    Money
	PnLPctDelta Percent
}

// EvaluateScenarios resolves each record against the baseline and computes
// its deltas.
//
// Scenarios keep the input order. Invalid records and records without a
// label are excluded and reported as findings.
func EvaluateScenarios(base Totals, records []ScenarioRecord) ([]Scenario, Findings) {
	var findings Findings
	scenarios := make([]Scenario, 0, len(records))
	for i, r := range records {
		if r.Invalid != "" {
			findings.Add(Error, "scenario %d invalid: %s", i+1, r.Invalid)
			continue
		}
		if r.Label == nil || strings.TrimSpace(*r.Label) == "" {
			findings.Add(Error, "scenario %d missing label", i+1)
			continue
		}
		t := r.Totals.Apply(base)
		scenarios = append(scenarios, Scenario{
			Label:       strings.TrimSpace(*r.Label),
			Totals:      t,
			PnLDelta:    t.PnL.Sub(base.PnL),
			PnLPctDelta: t.PnLPct - base.PnLPct,
		})
	}
	return scenarios, findings
}

// Shock is a uniform price adjustment applied to every position.
type Shock struct {
	Label string
	Pct   decimal.Decimal // relative change, -0.05 for "-5%"
	Delta decimal.Decimal // absolute change added to each price
}

// ParseShock parses a shock specification: "-5%" is a relative price change,
// "2" or "-1.5" an absolute change of the unit price.
func ParseShock(s string) (Shock, error) {
	token := strings.TrimSpace(s)
	if token == "" {
		return Shock{}, fmt.Errorf("empty shock")
	}
	shock := Shock{Label: token}
	if v, ok := strings.CutSuffix(token, "%"); ok {
		pct, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Shock{}, fmt.Errorf("invalid percentage shock %q: %w", s, err)
		}
		shock.Pct = pct.Div(decimal.NewFromInt(100))
		return shock, nil
	}
	delta, err := decimal.NewFromString(token)
	if err != nil {
		return Shock{}, fmt.Errorf("invalid price shock %q: %w", s, err)
	}
	shock.Delta = delta
	return shock, nil
}

// Reprice returns the price after the shock.
func (s Shock) Reprice(price Money) Money {
	factor := decimal.NewFromInt(1).Add(s.Pct)
	return Money{value: price.value.Mul(factor).Add(s.Delta)}
}

// ShockScenarios reprices the positions under each shock and returns fully
// specified scenario records, in the order of the shocks.
func ShockScenarios(positions []Position, shocks []Shock) []ScenarioRecord {
	records := make([]ScenarioRecord, 0, len(shocks))
	for _, s := range shocks {
		repriced := make([]Position, len(positions))
		for i, p := range positions {
			p.UnitPrice = s.Reprice(p.UnitPrice)
			repriced[i] = p
		}
		records = append(records, NewScenarioRecord(s.Label, Full(Analyze(repriced).Totals)))
	}
	return records
}
