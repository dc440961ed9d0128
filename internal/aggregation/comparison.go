package aggregation

import (
	"github.com/shopspring/decimal"

	"finboard/internal/money"
)

// Month-like windows are the only ones compared against the previous period.
const (
	minComparableDays = 28
	maxComparableDays = 31
)

// Comparison holds a metric for the active window and the one before it.
type Comparison struct {
	Available bool            `json:"available"`
	Current   decimal.Decimal `json:"current"`
	Previous  decimal.Decimal `json:"previous"`
	Delta     decimal.Decimal `json:"delta"`
}

// Comparable reports whether r is long enough, and short enough, to be
// compared with its previous window.
func Comparable(r Range) bool {
	n := r.Days()
	return n >= minComparableDays && n <= maxComparableDays
}

// Delta is the percentage change from previous to current, rounded to one
// decimal. A zero previous value yields 100 when current is positive, else 0.
func Delta(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return money.RoundPercent(current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)))
}

// Compare evaluates total over the items in r and in r.Previous(). When r is
// not month-like the comparison is reported as unavailable and left empty.
func Compare[T any](items []T, r Range, sel DateSelector[T], total func([]T) decimal.Decimal) Comparison {
	if !Comparable(r) {
		return Comparison{Current: decimal.Zero, Previous: decimal.Zero, Delta: decimal.Zero}
	}
	cur := total(Filter(items, r, sel))
	prev := total(Filter(items, r.Previous(), sel))
	return Comparison{
		Available: true,
		Current:   cur,
		Previous:  prev,
		Delta:     Delta(cur, prev),
	}
}
