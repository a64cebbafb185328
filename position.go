package pnlreport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RawRecord is one position row as read by a loader, before any validation.
//
// Values are kept as text: spreadsheets and delimited files are loosely typed
// and the coercion is part of the normalization.
type RawRecord struct {
	Row    int // 1-based row in the source, 0 if unknown
	Symbol string
	Qty    string
	Cost   string
	Price  string
}

// Position is a validated holding.
type Position struct {
	Symbol    string
	Quantity  Quantity
	UnitCost  Money
	UnitPrice Money
}

// NewPosition creates a position from numeric values. It is mostly useful in
// tests, loaders should go through Normalize.
func NewPosition[T float64 | int](symbol string, qty, cost, price T) Position {
	return Position{
		Symbol:    normalizeSymbol(symbol),
		Quantity:  Q(qty),
		UnitCost:  M(cost),
		UnitPrice: M(price),
	}
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseNumber coerces a loosely formatted number ("1,200.50", " 12 ").
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	return decimal.NewFromString(s)
}

// Normalize validates raw records and converts them into positions.
//
// It never fails: records that cannot be used are excluded and described in
// the returned findings. Symbols are trimmed and upper-cased, and when a
// symbol appears more than once the last record wins, and only the kept
// record is checked for negative values. A blank price is read
// as zero and kept, so that a missing price shows up as a stale price
// finding rather than a missing holding.
func Normalize(records []RawRecord) ([]Position, Findings) {
	var findings Findings
	valid := make([]Position, 0, len(records))
	last := make(map[string]int)

	for i, r := range records {
		row := r.Row
		if row == 0 {
			row = i + 1
		}

		symbol := normalizeSymbol(r.Symbol)
		if symbol == "" {
			findings.Add(Error, "record %d: blank symbol, record excluded", row)
			continue
		}

		qty, err := parseNumber(r.Qty)
		if err != nil {
			findings.Add(Error, "record %d (%s): invalid qty %q, record excluded", row, symbol, r.Qty)
			continue
		}
		cost, err := parseNumber(r.Cost)
		if err != nil {
			findings.Add(Error, "record %d (%s): invalid cost %q, record excluded", row, symbol, r.Cost)
			continue
		}
		price := decimal.Zero
		if strings.TrimSpace(r.Price) != "" {
			price, err = parseNumber(r.Price)
			if err != nil {
				findings.Add(Error, "record %d (%s): invalid price %q, record excluded", row, symbol, r.Price)
				continue
			}
		}

		if _, dup := last[symbol]; dup {
			findings.Add(Warning, "duplicate symbol %s: keeping the last record", symbol)
		}

		last[symbol] = len(valid)
		valid = append(valid, Position{
			Symbol:    symbol,
			Quantity:  Q(qty),
			UnitCost:  M(cost),
			UnitPrice: M(price),
		})
	}

	positions := make([]Position, 0, len(last))
	for i, p := range valid {
		if last[p.Symbol] != i {
			continue
		}
		if p.UnitCost.IsNegative() {
			findings.Add(Warning, "negative cost for %s: %s", p.Symbol, p.UnitCost.Decimal())
		}
		if p.UnitPrice.IsNegative() {
			findings.Add(Warning, "negative price for %s: %s", p.Symbol, p.UnitPrice.Decimal())
		}
		positions = append(positions, p)
	}
	if len(positions) == 0 {
		findings.Add(Error, MsgNoValidPositions)
	}
	return positions, findings
}
