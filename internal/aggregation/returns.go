package aggregation

import (
	"github.com/shopspring/decimal"

	"finboard/internal/models"
)

// daysPerMonth converts an investment term to a holding period for the tax table.
const daysPerMonth = 30

var (
	monthsPerYearPct = decimal.NewFromInt(12 * 100)

	rate225 = decimal.RequireFromString("0.225")
	rate20  = decimal.RequireFromString("0.20")
	rate175 = decimal.RequireFromString("0.175")
	rate15  = decimal.RequireFromString("0.15")
)

// NetReturn is the projected yield of an investment after withholding tax.
// It is a simplified approximation, not a tax computation.
type NetReturn struct {
	InvestmentID models.ID       `json:"investment_id"`
	HoldingDays  int             `json:"holding_days"`
	Gross        decimal.Decimal `json:"gross"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Tax          decimal.Decimal `json:"tax"`
	Net          decimal.Decimal `json:"net"`
}

// TaxRate returns the withholding rate (as a fraction) for an investment type
// held for the given number of days. Unknown types are not taxed.
func TaxRate(t models.InvestmentType, holdingDays int) decimal.Decimal {
	switch t {
	case models.InvestmentTypeTesouro, models.InvestmentTypeCDI:
		switch {
		case holdingDays <= 180:
			return rate225
		case holdingDays <= 360:
			return rate20
		case holdingDays <= 720:
			return rate175
		default:
			return rate15
		}
	case models.InvestmentTypeAcoes, models.InvestmentTypeCrypto:
		return rate15
	default:
		return decimal.Zero
	}
}

// ComputeNetReturn projects gross = value × (percentage/100/12) × months and
// subtracts the withholding tax for the investment's type and term.
func ComputeNetReturn(inv models.Investment) NetReturn {
	months := decimal.NewFromInt(int64(inv.Months))
	gross := inv.Value.Mul(inv.Percentage).Mul(months).Div(monthsPerYearPct)
	days := inv.Months * daysPerMonth
	rate := TaxRate(inv.InvestmentType, days)
	tax := gross.Mul(rate)
	return NetReturn{
		InvestmentID: inv.ID,
		HoldingDays:  days,
		Gross:        gross,
		TaxRate:      rate,
		Tax:          tax,
		Net:          gross.Sub(tax),
	}
}

// NetReturns projects every investment, preserving order.
func NetReturns(investments []models.Investment) []NetReturn {
	out := make([]NetReturn, 0, len(investments))
	for _, inv := range investments {
		out = append(out, ComputeNetReturn(inv))
	}
	return out
}
