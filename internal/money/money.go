// Package money holds the BRL amount helpers shared by the aggregation engine,
// the handlers and the terminal client.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale is the only locale the dashboard formats for.
var Locale = language.BrazilianPortuguese

var hundred = decimal.NewFromInt(100)

func init() {
	// The backend speaks JSON numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// RoundPercent rounds to one decimal place, half away from zero.
func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(1)
}

// FormatBRL renders an amount as "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("R$ %v", number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatPercent renders a percentage as "12,5%".
func FormatPercent(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%v%%", number.Decimal(RoundPercent(d).InexactFloat64(), number.Scale(1)))
}
