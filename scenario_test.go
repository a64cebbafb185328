package pnlreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestEvaluateScenarios(t *testing.T) {
	base := Totals{MarketValue: M(1000000), CostBasis: M(880000), PnL: M(120000), PnLPct: 13.64, WinCount: 3, LossCount: 1}
	records := []ScenarioRecord{
		NewScenarioRecord("乐观", Override{PnL: ptr(M(180000))}),
		NewScenarioRecord("压力", Override{PnL: ptr(M(-90000)), PnLPct: ptr(Percent(-10.23))}),
	}

	scenarios, findings := EvaluateScenarios(base, records)
	require.Len(t, scenarios, 2)
	assert.Empty(t, findings)

	assert.Equal(t, "乐观", scenarios[0].Label)
	assert.True(t, scenarios[0].PnLDelta.Equal(M(60000)), "乐观 delta = %v", scenarios[0].PnLDelta)
	// fields not restated fall back to the baseline
	assert.True(t, scenarios[0].Totals.MarketValue.Equal(base.MarketValue))
	assert.Equal(t, base.PnLPct, scenarios[0].Totals.PnLPct)
	assert.Equal(t, 3, scenarios[0].Totals.WinCount)

	assert.Equal(t, "压力", scenarios[1].Label)
	assert.True(t, scenarios[1].PnLDelta.Equal(M(-210000)), "压力 delta = %v", scenarios[1].PnLDelta)
	assert.True(t, scenarios[1].PnLPctDelta.Equal(-23.87), "压力 pct delta = %v", scenarios[1].PnLPctDelta)
}

func TestEvaluateScenarios_KeepsInputOrder(t *testing.T) {
	base := Totals{PnL: M(0)}
	records := []ScenarioRecord{
		NewScenarioRecord("small", Override{PnL: ptr(M(1))}),
		NewScenarioRecord("huge", Override{PnL: ptr(M(-1000))}),
		NewScenarioRecord("medium", Override{PnL: ptr(M(50))}),
	}
	scenarios, _ := EvaluateScenarios(base, records)
	var labels []string
	for _, s := range scenarios {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"small", "huge", "medium"}, labels)
}

func TestEvaluateScenarios_MissingLabel(t *testing.T) {
	records := []ScenarioRecord{
		NewScenarioRecord("ok", Override{}),
		{Totals: Override{PnL: ptr(M(5))}},
		NewScenarioRecord("   ", Override{}),
	}
	scenarios, findings := EvaluateScenarios(Totals{}, records)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "ok", scenarios[0].Label)
	assert.Equal(t, []string{"scenario 2 missing label", "scenario 3 missing label"}, findings.Strings())
}

func TestParseShock(t *testing.T) {
	tests := []struct {
		in        string
		wantPct   string
		wantDelta string
		wantErr   bool
	}{
		{in: "-5%", wantPct: "-0.05", wantDelta: "0"},
		{in: " 10 % ", wantPct: "0.1", wantDelta: "0"},
		{in: "2", wantPct: "0", wantDelta: "2"},
		{in: "-1.5", wantPct: "0", wantDelta: "-1.5"},
		{in: "", wantErr: true},
		{in: "abc%", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPct, got.Pct.String())
			assert.Equal(t, tt.wantDelta, got.Delta.String())
		})
	}
}

func TestShockScenarios(t *testing.T) {
	shocks := []Shock{must(ParseShock("-10%")), must(ParseShock("+10%")), must(ParseShock("5"))}
	records := ShockScenarios(samplePositions(), shocks)
	require.Len(t, records, 3)

	base := Analyze(samplePositions()).Totals
	scenarios, findings := EvaluateScenarios(base, records)
	require.Empty(t, findings)
	require.Len(t, scenarios, 3)

	// -10%: prices 135 and 135, market value 1350 + 675 = 2025
	assert.Equal(t, "-10%", scenarios[0].Label)
	assert.True(t, scenarios[0].Totals.MarketValue.Equal(M(2025)), "got %v", scenarios[0].Totals.MarketValue)
	assert.True(t, scenarios[0].PnLDelta.Equal(M(-225)), "got %v", scenarios[0].PnLDelta)
	// +10%: 2475
	assert.True(t, scenarios[1].Totals.MarketValue.Equal(M(2475)), "got %v", scenarios[1].Totals.MarketValue)
	// +5 per unit on 15 units
	assert.True(t, scenarios[2].PnLDelta.Equal(M(75)), "got %v", scenarios[2].PnLDelta)
	assert.True(t, scenarios[2].Totals.CostBasis.Equal(base.CostBasis))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
