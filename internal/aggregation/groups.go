package aggregation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/models"
	"finboard/internal/money"
)

// Uncategorized labels expenses with no hydrated category.
const Uncategorized = "Sem categoria"

// dayLabelLayout is the pt-BR day/month label used on the daily chart.
const dayLabelLayout = "02/01"

// CategoryTotal is the summed value of one category.
type CategoryTotal struct {
	Name    string          `json:"name"`
	Color   string          `json:"color,omitempty"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// GroupByCategory sums expenses per category display name, in the order the
// names are first seen. Every expense lands in exactly one group, so the group
// totals add up to Total(expenses).
func GroupByCategory(expenses []models.Expense) []CategoryTotal {
	groups := make([]CategoryTotal, 0)
	index := make(map[string]int)
	grand := decimal.Zero

	for _, e := range expenses {
		name, color := Uncategorized, ""
		if e.Category != nil {
			name, color = e.Category.Name, e.Category.Color
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryTotal{Name: name, Color: color, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(e.Value)
		grand = grand.Add(e.Value)
	}

	for i := range groups {
		groups[i].Percent = money.RoundPercent(money.Percent(groups[i].Total, grand))
	}
	return groups
}

// DayTotal is the summed value of one calendar day.
type DayTotal struct {
	Date  time.Time       `json:"date"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// GroupByDay sums expenses per calendar day in loc, filed by ExpenseDate.
// The result is in chronological order. Expenses without a usable date are
// skipped.
func GroupByDay(expenses []models.Expense, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = models.Location()
	}
	byDay := make(map[time.Time]decimal.Decimal)
	for _, e := range expenses {
		d := ExpenseDate(e)
		if !d.Valid() {
			continue
		}
		day := startOfDay(d.Time, loc)
		byDay[day] = byDay[day].Add(e.Value)
	}

	out := make([]DayTotal, 0, len(byDay))
	for day, total := range byDay {
		out = append(out, DayTotal{Date: day, Label: day.Format(dayLabelLayout), Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TypeTotal is the summed value and count of one investment type.
type TypeTotal struct {
	Type  models.InvestmentType `json:"type"`
	Total decimal.Decimal       `json:"total"`
	Count int                   `json:"count"`
}

// GroupByInvestmentType sums investments per type, in first-seen order.
func GroupByInvestmentType(investments []models.Investment) []TypeTotal {
	out := make([]TypeTotal, 0)
	index := make(map[models.InvestmentType]int)
	for _, inv := range investments {
		i, ok := index[inv.InvestmentType]
		if !ok {
			i = len(out)
			index[inv.InvestmentType] = i
			out = append(out, TypeTotal{Type: inv.InvestmentType, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(inv.Value)
		out[i].Count++
	}
	return out
}
