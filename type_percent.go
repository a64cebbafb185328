package pnlreport

import (
	"fmt"
	"math"
)

// Percent is a percentage value: 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

// rounded drops the sign of values that round to zero, so that they never
// print as "-0.00%".
func (p Percent) rounded() float64 {
	v := math.Round(float64(p)*100) / 100
	if v == 0 {
		return 0
	}
	return v
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p.rounded())
}

func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", p.rounded())
}
