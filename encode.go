package pnlreport

import (
	"encoding/json"
	"io"
)

// JSON encodings use snake_case keys in a stable order, the same keys a
// scenario source uses for totals.

func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("market_value", t.MarketValue)
	w.Append("cost_basis", t.CostBasis)
	w.Append("pnl", t.PnL)
	w.Append("pnl_pct", t.PnLPct.rounded())
	w.Append("win_count", t.WinCount)
	w.Append("loss_count", t.LossCount)
	w.Append("flat_count", t.FlatCount)
	return w.MarshalJSON()
}

func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", p.Symbol)
	w.Append("qty", p.Quantity)
	w.Append("cost", p.UnitCost)
	w.Append("price", p.UnitPrice)
	return w.MarshalJSON()
}

func (m PositionMetrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(m.Position)
	w.Append("side", m.Side.String())
	w.Append("market_value", m.MarketValue)
	w.Append("cost_basis", m.CostBasis)
	w.Append("pnl", m.PnL)
	w.Append("pnl_pct", m.PnLPct.rounded())
	w.Optional("zero_cost_basis", m.ZeroCostBasis)
	return w.MarshalJSON()
}

func (s Scenario) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("label", s.Label)
	w.Append("totals", s.Totals)
	w.Append("pnl_delta", s.PnLDelta)
	w.Append("pnl_pct_delta", s.PnLPctDelta.rounded())
	return w.MarshalJSON()
}

func (rc *ReportContext) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("base_totals", rc.Base)
	w.Append("longs", rc.Longs)
	w.Append("shorts", rc.Shorts)
	w.Append("positions", nonNil(rc.Positions))
	w.Append("scenarios", nonNil(rc.Scenarios))
	w.Append("quality_findings", nonNil(rc.Findings))
	w.Append("narrative_text", rc.Narrative)
	w.Append("narrative_source", rc.NarrativeSource)
	w.Append("quality_text", rc.Quality)
	w.Append("quality_source", rc.QualitySource)
	return w.MarshalJSON()
}

// nonNil makes nil slices encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// EncodeReportContext writes the context as indented JSON.
func EncodeReportContext(w io.Writer, rc *ReportContext) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rc)
}
