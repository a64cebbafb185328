package pnlreport

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the report currency.
//
// A report is always produced in a single currency, so Money carries no
// currency code: the label shown next to amounts is a rendering concern.
type Money struct {
	value decimal.Decimal // as major unit value
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// amounts are displayed with two decimals and ',' grouping, whatever the locale.
var amountFormatter = money.NewFormatter(2, ".", ",", "", "1")

// maxCents is the largest amount, in cents, the formatter can take.
var maxCents = decimal.New(math.MaxInt64, 0)

// String returns the string representation of the money value, e.g. "1,234.50".
func (m Money) String() string {
	cents := m.value.Round(2).Shift(2)
	if cents.Abs().LessThan(maxCents) {
		return amountFormatter.Format(cents.IntPart())
	}
	return groupThousands(m.value.StringFixed(2))
}

// groupThousands inserts ',' every three digits in the integer part of a
// fixed point number such as "-1234567.89".
func groupThousands(s string) string {
	sign, digits := "", s
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	intPart, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// SignedString returns the string representation of the money value with an
// explicit '+' for positive values.
func (m Money) SignedString() string {
	if m.value.Round(2).IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Sign() int                { return m.value.Sign() }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money               { return Money{value: m.value.Abs()} }
func (m Money) Mul(n Quantity) Money     { return Money{value: m.value.Mul(n.value)} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }

// AsFloat returns an approximation of the value, for display purposes only.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// Ratio returns m / n * 100 using |n| as the denominator, so that the sign of
// the result is the sign of m. ok is false when n is zero.
func (m Money) Ratio(n Money) (p Percent, ok bool) {
	if n.value.IsZero() {
		return 0, false
	}
	r := m.value.Div(n.value.Abs()).Mul(decimal.NewFromInt(100))
	return Percent(r.InexactFloat64()), true
}

// MarshalJSON encodes money as a JSON number rounded to the cent.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.Round(2).String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}
