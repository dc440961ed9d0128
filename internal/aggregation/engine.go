// Package aggregation derives read-only dashboard figures from entity
// collections. Every function is pure: inputs are never modified and no
// function returns an error or panics on well-typed input.
package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/models"
)

// Valued is anything with a money value to sum.
type Valued interface {
	Amount() decimal.Decimal
}

// DateSelector picks the date an item is filed under.
type DateSelector[T any] func(T) models.Date

// ExpenseDate files an expense under its due date, or its creation date when
// the due date is missing.
func ExpenseDate(e models.Expense) models.Date {
	if e.DueDate.Valid() {
		return e.DueDate
	}
	return e.CreationDate
}

// EarningDate files an earning under its receipt date, or its creation date.
func EarningDate(e models.Earning) models.Date {
	if e.ReceivedDate.Valid() {
		return e.ReceivedDate
	}
	return e.CreationDate
}

// InvestmentDate files an investment under its creation date.
func InvestmentDate(i models.Investment) models.Date { return i.CreationDate }

// Range is a closed interval of calendar days, evaluated in From's location.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewRange builds the closed range [from, to] of whole days in loc.
func NewRange(from, to time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = models.Location()
	}
	r := Range{}
	if !from.IsZero() {
		r.From = startOfDay(from, loc)
	}
	if !to.IsZero() {
		r.To = startOfDay(to, loc)
	}
	return r
}

func (r Range) location() *time.Location {
	if r.From.IsZero() {
		return models.Location()
	}
	return r.From.Location()
}

// Valid is false when a bound is missing or From is after To.
func (r Range) Valid() bool {
	if r.From.IsZero() || r.To.IsZero() {
		return false
	}
	loc := r.location()
	return !startOfDay(r.To, loc).Before(startOfDay(r.From, loc))
}

// Days returns the inclusive number of calendar days in the range, or 0.
func (r Range) Days() int {
	if !r.Valid() {
		return 0
	}
	loc := r.location()
	return daysBetween(startOfDay(r.From, loc), startOfDay(r.To, loc)) + 1
}

// Contains reports whether t falls on a day within the range.
func (r Range) Contains(t time.Time) bool {
	if !r.Valid() || t.IsZero() {
		return false
	}
	loc := r.location()
	day := startOfDay(t, loc)
	return !day.Before(startOfDay(r.From, loc)) && !day.After(startOfDay(r.To, loc))
}

// Previous returns the window of identical length that ends the day before
// From, i.e. [From-N, From) in days. It never overlaps r.
func (r Range) Previous() Range {
	n := r.Days()
	if n == 0 {
		return Range{}
	}
	from := startOfDay(r.From, r.location())
	return Range{From: from.AddDate(0, 0, -n), To: from.AddDate(0, 0, -1)}
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days, ignoring DST shifts inside the interval.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Filter returns the items whose selected date falls within r. An invalid
// range yields an empty result, never the whole collection. Items with a
// missing or malformed date are left out.
func Filter[T any](items []T, r Range, sel DateSelector[T]) []T {
	out := make([]T, 0)
	if !r.Valid() {
		return out
	}
	for _, item := range items {
		d := sel(item)
		if !d.Valid() {
			continue
		}
		if r.Contains(d.Time) {
			out = append(out, item)
		}
	}
	return out
}

// Total sums the values of items; an empty collection totals zero.
func Total[T Valued](items []T) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount())
	}
	return sum
}

// StatusTotal sums the expenses with the given status.
func StatusTotal(expenses []models.Expense, status models.ExpenseStatus) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		if e.Status == status {
			sum = sum.Add(e.Value)
		}
	}
	return sum
}

// PaidTotal sums the PAID expenses.
func PaidTotal(expenses []models.Expense) decimal.Decimal {
	return StatusTotal(expenses, models.ExpenseStatusPaid)
}

// AccountBalance is earnings minus paid expenses minus investments.
func AccountBalance(earnings []models.Earning, expenses []models.Expense, investments []models.Investment) decimal.Decimal {
	return Total(earnings).Sub(PaidTotal(expenses)).Sub(Total(investments))
}

// ProjectedBalance is earnings minus every expense, paid or not, minus investments.
func ProjectedBalance(earnings []models.Earning, expenses []models.Expense, investments []models.Investment) decimal.Decimal {
	return Total(earnings).Sub(Total(expenses)).Sub(Total(investments))
}

// RecurringTotal sums the earnings flagged as recurring.
func RecurringTotal(earnings []models.Earning) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range earnings {
		if e.Recurring {
			sum = sum.Add(e.Value)
		}
	}
	return sum
}

// Overdue returns unpaid, uncancelled expenses whose due day is before today.
func Overdue(expenses []models.Expense, today time.Time) []models.Expense {
	out := make([]models.Expense, 0)
	if today.IsZero() {
		return out
	}
	loc := today.Location()
	cutoff := startOfDay(today, loc)
	for _, e := range expenses {
		if e.Status != models.ExpenseStatusPending && e.Status != models.ExpenseStatusOverdue {
			continue
		}
		if !e.DueDate.Valid() {
			continue
		}
		if startOfDay(e.DueDate.Time, loc).Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
