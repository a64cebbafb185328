package pnlreport

import (
	"strings"
	"testing"
)

func TestClassifyStance(t *testing.T) {
	tests := []struct {
		pct  Percent
		want Stance
	}{
		{12.5, Favorable},
		{5.01, Favorable},
		{5, Flat},
		{0, Flat},
		{-5, Flat},
		{-5.01, UnderPressure},
		{-40, UnderPressure},
	}
	for _, tt := range tests {
		if got := ClassifyStance(tt.pct); got != tt.want {
			t.Errorf("ClassifyStance(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestNarrate(t *testing.T) {
	a := Analyze(samplePositions())
	got := Narrate(a.Totals, nil)
	want := "组合整体表现良好：总市值 2,250.00，总成本 2,000.00，净盈亏 +250.00（+12.50%）。" +
		"盈利与亏损持仓各 1 个，盈亏分布较为均衡。"
	if got != want {
		t.Errorf("Narrate() =\n%s\nwant\n%s", got, want)
	}
}

func TestNarrate_Dominance(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		want   string
	}{
		{
			name:   "winners",
			totals: Totals{WinCount: 3, LossCount: 1},
			want:   "盈利持仓 3 个，多于亏损持仓 1 个，收益主要来自盈利标的。",
		},
		{
			name:   "losers with flat",
			totals: Totals{WinCount: 1, LossCount: 2, FlatCount: 1},
			want:   "亏损持仓 2 个，多于盈利持仓 1 个，需关注亏损标的的拖累，另有 1 个持仓持平。",
		},
		{
			name:   "no positions",
			totals: Totals{},
			want:   "暂无可用于分析的有效持仓。",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Narrate(tt.totals, nil)
			if !strings.HasSuffix(got, tt.want) {
				t.Errorf("Narrate() = %q, want suffix %q", got, tt.want)
			}
		})
	}
}

func TestNarrate_WidestScenario(t *testing.T) {
	base := Totals{PnL: M(120000), CostBasis: M(1000000), PnLPct: 12, WinCount: 1}
	scenarios, _ := EvaluateScenarios(base, []ScenarioRecord{
		NewScenarioRecord("乐观", Override{PnL: ptr(M(180000))}),
		NewScenarioRecord("压力", Override{PnL: ptr(M(-90000)), PnLPct: ptr(Percent(-9))}),
	})

	got := Narrate(base, scenarios)
	want := "情景「压力」与基准的偏离最大：净盈亏 -90,000.00，较基准变动 -210,000.00（-21.00%）。"
	if !strings.HasSuffix(got, want) {
		t.Errorf("Narrate() = %q, want suffix %q", got, want)
	}
	if again := Narrate(base, scenarios); again != got {
		t.Errorf("Narrate() is not deterministic: %q != %q", again, got)
	}
}

func TestWidestScenario_Tie(t *testing.T) {
	scenarios := []Scenario{
		{Label: "first", PnLDelta: M(-10)},
		{Label: "second", PnLDelta: M(10)},
	}
	got, ok := WidestScenario(scenarios)
	if !ok || got.Label != "first" {
		t.Errorf("WidestScenario() = %q, %v, want first", got.Label, ok)
	}
	if _, ok := WidestScenario(nil); ok {
		t.Errorf("WidestScenario(nil) ok = true, want false")
	}
}
