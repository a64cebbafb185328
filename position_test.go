package pnlreport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func symbols(positions []Position) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = p.Symbol
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		records      []RawRecord
		wantSymbols  []string
		wantFindings []string
	}{
		{
			name: "valid records",
			records: []RawRecord{
				{Symbol: " aapl ", Qty: "10", Cost: "100", Price: "150"},
				{Symbol: "TSLA", Qty: "5", Cost: "1,200.50", Price: "150"},
			},
			wantSymbols: []string{"AAPL", "TSLA"},
		},
		{
			name: "invalid numbers are excluded",
			records: []RawRecord{
				{Row: 2, Symbol: "AAPL", Qty: "ten", Cost: "100", Price: "150"},
				{Row: 3, Symbol: "MSFT", Qty: "1", Cost: "", Price: "150"},
				{Row: 4, Symbol: "TSLA", Qty: "5", Cost: "200", Price: "n/a"},
				{Row: 5, Symbol: "GOOG", Qty: "1", Cost: "100", Price: "110"},
			},
			wantSymbols: []string{"GOOG"},
			wantFindings: []string{
				`record 2 (AAPL): invalid qty "ten", record excluded`,
				`record 3 (MSFT): invalid cost "", record excluded`,
				`record 4 (TSLA): invalid price "n/a", record excluded`,
			},
		},
		{
			name: "blank symbol",
			records: []RawRecord{
				{Symbol: "  ", Qty: "1", Cost: "1", Price: "1"},
				{Symbol: "AAPL", Qty: "1", Cost: "1", Price: "1"},
			},
			wantSymbols:  []string{"AAPL"},
			wantFindings: []string{"record 1: blank symbol, record excluded"},
		},
		{
			name: "duplicates keep the last record",
			records: []RawRecord{
				{Symbol: "AAPL", Qty: "1", Cost: "1", Price: "1"},
				{Symbol: "TSLA", Qty: "1", Cost: "1", Price: "1"},
				{Symbol: "aapl", Qty: "2", Cost: "1", Price: "1"},
			},
			wantSymbols:  []string{"TSLA", "AAPL"},
			wantFindings: []string{"duplicate symbol AAPL: keeping the last record"},
		},
		{
			name: "negative values are kept and flagged",
			records: []RawRecord{
				{Symbol: "SHRT", Qty: "-10", Cost: "5", Price: "4"},
				{Symbol: "ODD", Qty: "1", Cost: "-5", Price: "-4"},
			},
			wantSymbols: []string{"SHRT", "ODD"},
			wantFindings: []string{
				"negative cost for ODD: -5",
				"negative price for ODD: -4",
			},
		},
		{
			name: "replaced records are not flagged",
			records: []RawRecord{
				{Symbol: "AAPL", Qty: "1", Cost: "-100", Price: "-1"},
				{Symbol: "AAPL", Qty: "1", Cost: "100", Price: "150"},
				{Symbol: "TSLA", Qty: "1", Cost: "100", Price: "150"},
				{Symbol: "TSLA", Qty: "1", Cost: "-7", Price: "150"},
			},
			wantSymbols: []string{"AAPL", "TSLA"},
			wantFindings: []string{
				"duplicate symbol AAPL: keeping the last record",
				"duplicate symbol TSLA: keeping the last record",
				"negative cost for TSLA: -7",
			},
		},
		{
			name:         "no valid positions",
			records:      []RawRecord{{Symbol: "", Qty: "1", Cost: "1", Price: "1"}},
			wantSymbols:  []string{},
			wantFindings: []string{"record 1: blank symbol, record excluded", MsgNoValidPositions},
		},
		{
			name:         "no records at all",
			wantSymbols:  []string{},
			wantFindings: []string{MsgNoValidPositions},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions, findings := Normalize(tt.records)
			if diff := cmp.Diff(tt.wantSymbols, symbols(positions)); diff != "" {
				t.Errorf("Normalize() symbols mismatch (-want +got):\n%s", diff)
			}
			got := findings.Strings()
			if len(tt.wantFindings) == 0 {
				tt.wantFindings = []string{}
			}
			if diff := cmp.Diff(tt.wantFindings, got); diff != "" {
				t.Errorf("Normalize() findings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalize_LastRecordValues(t *testing.T) {
	positions, _ := Normalize([]RawRecord{
		{Symbol: "AAPL", Qty: "1", Cost: "1", Price: "1"},
		{Symbol: "AAPL", Qty: "7", Cost: "2", Price: "3"},
	})
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if got := positions[0].Quantity; !got.Equal(Q(7)) {
		t.Errorf("Quantity = %v, want 7", got)
	}
}

func TestNormalize_BlankPriceIsZero(t *testing.T) {
	positions, findings := Normalize([]RawRecord{{Symbol: "AAPL", Qty: "1", Cost: "1", Price: " "}})
	if len(positions) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(positions))
	}
	if !positions[0].UnitPrice.IsZero() {
		t.Errorf("UnitPrice = %v, want 0", positions[0].UnitPrice)
	}
	if len(findings) != 0 {
		t.Errorf("unexpected findings %v", findings.Strings())
	}
}
