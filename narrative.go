package pnlreport

import (
	"fmt"
	"strings"
)

// Stance is the overall classification of a portfolio return.
type Stance int

const (
	Flat Stance = iota
	Favorable
	UnderPressure
)

// Stance thresholds, in percent.
const (
	favorableAbove     Percent = 5
	underPressureBelow Percent = -5
)

// ClassifyStance classifies a return: above 5% is favorable, below -5% is
// under pressure, anything else is flat.
func ClassifyStance(p Percent) Stance {
	switch {
	case p > favorableAbove:
		return Favorable
	case p < underPressureBelow:
		return UnderPressure
	default:
		return Flat
	}
}

// String returns the label used in the narrative.
func (s Stance) String() string {
	switch s {
	case Favorable:
		return "良好"
	case UnderPressure:
		return "承压"
	default:
		return "持平"
	}
}

// Dominance tells whether winning or losing positions are the majority.
type Dominance int

const (
	Balanced Dominance = iota
	Winners
	Losers
)

// ClassifyDominance compares win and loss counts. A tie is Balanced.
func ClassifyDominance(t Totals) Dominance {
	switch {
	case t.WinCount > t.LossCount:
		return Winners
	case t.LossCount > t.WinCount:
		return Losers
	default:
		return Balanced
	}
}

// WidestScenario returns the scenario with the largest absolute P&L delta.
// Ties go to the first one in input order.
func WidestScenario(scenarios []Scenario) (Scenario, bool) {
	if len(scenarios) == 0 {
		return Scenario{}, false
	}
	widest := scenarios[0]
	for _, s := range scenarios[1:] {
		if s.PnLDelta.Abs().Decimal().GreaterThan(widest.PnLDelta.Abs().Decimal()) {
			widest = s
		}
	}
	return widest, true
}

// Narrate writes the default commentary of a report: one sentence for the
// stance, one for the win/loss balance and one for the widest scenario when
// scenarios exist. The output only depends on its inputs.
func Narrate(base Totals, scenarios []Scenario) string {
	sentences := []string{
		stanceSentence(ClassifyStance(base.PnLPct), base),
		dominanceSentence(ClassifyDominance(base), base),
	}
	if s, ok := WidestScenario(scenarios); ok {
		sentences = append(sentences, scenarioSentence(s))
	}
	return strings.Join(sentences, "")
}

func stanceSentence(s Stance, t Totals) string {
	return fmt.Sprintf("组合整体表现%s：总市值 %s，总成本 %s，净盈亏 %s（%s）。",
		s, t.MarketValue, t.CostBasis, t.PnL.SignedString(), t.PnLPct.SignedString())
}

func dominanceSentence(d Dominance, t Totals) string {
	if t.Positions() == 0 {
		return "暂无可用于分析的有效持仓。"
	}
	var b strings.Builder
	switch d {
	case Winners:
		fmt.Fprintf(&b, "盈利持仓 %d 个，多于亏损持仓 %d 个，收益主要来自盈利标的", t.WinCount, t.LossCount)
	case Losers:
		fmt.Fprintf(&b, "亏损持仓 %d 个，多于盈利持仓 %d 个，需关注亏损标的的拖累", t.LossCount, t.WinCount)
	default:
		fmt.Fprintf(&b, "盈利与亏损持仓各 %d 个，盈亏分布较为均衡", t.WinCount)
	}
	if t.FlatCount > 0 {
		fmt.Fprintf(&b, "，另有 %d 个持仓持平", t.FlatCount)
	}
	b.WriteString("。")
	return b.String()
}

func scenarioSentence(s Scenario) string {
	return fmt.Sprintf("情景「%s」与基准的偏离最大：净盈亏 %s，较基准变动 %s（%s）。",
		s.Label, s.Totals.PnL, s.PnLDelta.SignedString(), s.PnLPctDelta.SignedString())
}
