package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/models"
)

// Balances are computed over every record, regardless of the active window.
type Balances struct {
	Account   decimal.Decimal `json:"account"`
	Projected decimal.Decimal `json:"projected"`
}

// Period holds the totals of the records that fall in the active window.
type Period struct {
	Earnings          decimal.Decimal `json:"earnings"`
	RecurringEarnings decimal.Decimal `json:"recurring_earnings"`
	Expenses          decimal.Decimal `json:"expenses"`
	PaidExpenses      decimal.Decimal `json:"paid_expenses"`
	Investments       decimal.Decimal `json:"investments"`
	Balance           decimal.Decimal `json:"balance"`
}

// Comparisons holds the period-over-period deltas shown on the cards.
type Comparisons struct {
	Earnings    Comparison `json:"earnings"`
	Expenses    Comparison `json:"expenses"`
	Investments Comparison `json:"investments"`
}

// Summary is everything the dashboard page shows for one window.
type Summary struct {
	Range            Range           `json:"range"`
	Days             int             `json:"days"`
	Balances         Balances        `json:"balances"`
	Period           Period          `json:"period"`
	Comparisons      Comparisons     `json:"comparisons"`
	ByCategory       []CategoryTotal `json:"by_category"`
	ByDay            []DayTotal      `json:"by_day"`
	ByInvestmentType []TypeTotal     `json:"by_investment_type"`
	Objectives       []Progress      `json:"objectives"`
	OverdueCount     int             `json:"overdue_count"`
	OverdueTotal     decimal.Decimal `json:"overdue_total"`
}

// Summarize derives the dashboard figures for r from a snapshot. today
// anchors the overdue check.
func Summarize(s models.Snapshot, r Range, today time.Time) Summary {
	earnings := Filter(s.Earnings, r, EarningDate)
	expenses := Filter(s.Expenses, r, ExpenseDate)
	investments := Filter(s.Investments, r, InvestmentDate)
	overdue := Overdue(s.Expenses, today)

	return Summary{
		Range: r,
		Days:  r.Days(),
		Balances: Balances{
			Account:   AccountBalance(s.Earnings, s.Expenses, s.Investments),
			Projected: ProjectedBalance(s.Earnings, s.Expenses, s.Investments),
		},
		Period: Period{
			Earnings:          Total(earnings),
			RecurringEarnings: RecurringTotal(earnings),
			Expenses:          Total(expenses),
			PaidExpenses:      PaidTotal(expenses),
			Investments:       Total(investments),
			Balance:           AccountBalance(earnings, expenses, investments),
		},
		Comparisons: Comparisons{
			Earnings:    Compare(s.Earnings, r, EarningDate, Total[models.Earning]),
			Expenses:    Compare(s.Expenses, r, ExpenseDate, Total[models.Expense]),
			Investments: Compare(s.Investments, r, InvestmentDate, Total[models.Investment]),
		},
		ByCategory:       GroupByCategory(expenses),
		ByDay:            GroupByDay(expenses, r.location()),
		ByInvestmentType: GroupByInvestmentType(investments),
		Objectives:       ObjectivesProgress(s.Objectives, s.Investments),
		OverdueCount:     len(overdue),
		OverdueTotal:     Total(overdue),
	}
}
