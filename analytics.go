package pnlreport

// Side is the direction of a position.
type Side int

const (
	Long Side = iota
	Short
)

// String returns the label used in reports.
func (s Side) String() string {
	if s == Short {
		return "空头"
	}
	return "多头"
}

// PositionMetrics holds the computed values of a single position.
type PositionMetrics struct {
	Position
	Side        Side
	MarketValue Money
	CostBasis   Money
	PnL         Money
	PnLPct      Percent
	// ZeroCostBasis is true when PnLPct could not be computed and was set to 0.
	ZeroCostBasis bool
}

// Totals are the aggregated metrics of a set of positions.
type Totals struct {
	MarketValue Money
	CostBasis   Money
	PnL         Money
	PnLPct      Percent
	WinCount    int
	LossCount   int
	FlatCount   int
}

// Analytics is the result of the analysis of a set of positions.
type Analytics struct {
	Positions []PositionMetrics
	Totals    Totals
	Longs     Totals
	Shorts    Totals
}

// Measure computes the metrics of a single position.
func Measure(p Position) PositionMetrics {
	m := PositionMetrics{
		Position:    p,
		MarketValue: p.UnitPrice.Mul(p.Quantity),
		CostBasis:   p.UnitCost.Mul(p.Quantity),
	}
	if p.Quantity.IsNegative() {
		m.Side = Short
	}
	m.PnL = m.MarketValue.Sub(m.CostBasis)
	pct, ok := m.PnL.Ratio(m.CostBasis)
	m.PnLPct = pct
	m.ZeroCostBasis = !ok
	return m
}

// Analyze computes per position and aggregated profit and loss.
//
// It is a pure function. The aggregates are exact decimal sums, hence they do
// not depend on the order of positions.
func Analyze(positions []Position) *Analytics {
	a := &Analytics{Positions: make([]PositionMetrics, 0, len(positions))}
	var longs, shorts []PositionMetrics
	for _, p := range positions {
		m := Measure(p)
		a.Positions = append(a.Positions, m)
		if m.Side == Short {
			shorts = append(shorts, m)
		} else {
			longs = append(longs, m)
		}
	}
	a.Totals = Aggregate(a.Positions)
	a.Longs = Aggregate(longs)
	a.Shorts = Aggregate(shorts)
	return a
}

// Aggregate sums position metrics into Totals.
func Aggregate(metrics []PositionMetrics) Totals {
	var t Totals
	for _, m := range metrics {
		t.MarketValue = t.MarketValue.Add(m.MarketValue)
		t.CostBasis = t.CostBasis.Add(m.CostBasis)
		switch m.PnL.Sign() {
		case 1:
			t.WinCount++
		case -1:
			t.LossCount++
		default:
			t.FlatCount++
		}
	}
	t.PnL = t.MarketValue.Sub(t.CostBasis)
	t.PnLPct, _ = t.PnL.Ratio(t.CostBasis)
	return t
}

// Positions returns the number of positions counted in the totals.
func (t Totals) Positions() int { return t.WinCount + t.LossCount + t.FlatCount }
