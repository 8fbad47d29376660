package coinfolio

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// ratioPercent returns part over whole as a percentage. It resolves the
// degenerate whole (zero or negative) to 0 instead of letting a division
// by zero surface in a report.
func ratioPercent(part, whole Money) Percent {
	if !whole.IsPositive() {
		return 0
	}
	return Percent(part.value.Div(whole.value).InexactFloat64() * 100)
}
