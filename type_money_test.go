package pnlreport

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m          Money
		want       string
		wantSigned string
	}{
		{M(0), "0.00", "0.00"},
		{M(2250), "2,250.00", "+2,250.00"},
		{M(-90000), "-90,000.00", "-90,000.00"},
		{M(1234567.891), "1,234,567.89", "+1,234,567.89"},
		{M(0.004), "0.00", "0.00"},
		{Money{}, "0.00", "0.00"},
		{M(100000000000000000), "100,000,000,000,000,000.00", "+100,000,000,000,000,000.00"},
		{M(-100000000000000000), "-100,000,000,000,000,000.00", "-100,000,000,000,000,000.00"},
		{M(must(decimal.NewFromString("123456789012345678901.005"))), "123,456,789,012,345,678,901.01", "+123,456,789,012,345,678,901.01"},
		{M(must(decimal.NewFromString("92233720368547758.06"))), "92,233,720,368,547,758.06", "+92,233,720,368,547,758.06"},
		{M(must(decimal.NewFromString("-92233720368547758.07"))), "-92,233,720,368,547,758.07", "-92,233,720,368,547,758.07"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.m.SignedString(); got != tt.wantSigned {
			t.Errorf("SignedString() = %q, want %q", got, tt.wantSigned)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	for in, want := range map[string]string{
		"0.00":        "0.00",
		"123.45":      "123.45",
		"1234.50":     "1,234.50",
		"-123456.00":  "-123,456.00",
		"-1234567.89": "-1,234,567.89",
		"1000":        "1,000",
	} {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMoney_Ratio(t *testing.T) {
	tests := []struct {
		name   string
		m, n   Money
		want   Percent
		wantOK bool
	}{
		{"gain", M(250), M(2000), 12.5, true},
		{"short gain", M(100), M(-1000), 10, true},
		{"short loss", M(-100), M(-1000), -10, true},
		{"zero basis", M(50), M(0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.m.Ratio(tt.n)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("Ratio() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPercent_String(t *testing.T) {
	tests := []struct {
		p                Percent
		want, wantSigned string
	}{
		{12.5, "12.50%", "+12.50%"},
		{-0.001, "0.00%", "+0.00%"},
		{-23.87, "-23.87%", "-23.87%"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if got := tt.p.SignedString(); got != tt.wantSigned {
			t.Errorf("SignedString() = %q, want %q", got, tt.wantSigned)
		}
	}
}
