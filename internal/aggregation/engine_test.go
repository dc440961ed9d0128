package aggregation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) models.Date { return models.NewDate(y, m, d) }

func idp(s string) *models.ID {
	id := models.ID(s)
	return &id
}

func rng(from, to models.Date) Range {
	return NewRange(from.Time, to.Time, models.Location())
}

func TestRange(t *testing.T) {
	r := rng(day(2024, 1, 1), day(2024, 1, 31))
	require.True(t, r.Valid())
	assert.Equal(t, 31, r.Days())
	assert.True(t, r.Contains(day(2024, 1, 31).Add(23*time.Hour)))
	assert.False(t, r.Contains(day(2024, 2, 1).Time))

	prev := r.Previous()
	assert.True(t, day(2023, 12, 1).Equal(prev.From))
	assert.True(t, day(2023, 12, 31).Equal(prev.To))
	assert.False(t, prev.Contains(r.From), "previous window must not overlap")

	assert.False(t, Range{From: day(2024, 1, 1).Time}.Valid())
	assert.False(t, rng(day(2024, 2, 1), day(2024, 1, 1)).Valid())
}

func TestFilter(t *testing.T) {
	expenses := []models.Expense{
		{ID: "1", Value: dec("10"), DueDate: day(2024, 3, 5)},
		{ID: "2", Value: dec("20"), CreationDate: day(2024, 3, 6)},
		{ID: "3", Value: dec("30"), DueDate: day(2024, 4, 1), CreationDate: day(2024, 3, 1)},
		{ID: "4", Value: dec("40")},
	}

	t.Run("due date with creation fallback", func(t *testing.T) {
		got := Filter(expenses, rng(day(2024, 3, 1), day(2024, 3, 31)), ExpenseDate)
		require.Len(t, got, 2)
		assert.Equal(t, models.ID("1"), got[0].ID)
		assert.Equal(t, models.ID("2"), got[1].ID)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		got := Filter(expenses, rng(day(2024, 3, 5), day(2024, 3, 5)), ExpenseDate)
		require.Len(t, got, 1)
		assert.Equal(t, models.ID("1"), got[0].ID)
	})

	t.Run("from after to is empty", func(t *testing.T) {
		got := Filter(expenses, rng(day(2024, 3, 31), day(2024, 3, 1)), ExpenseDate)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing bound is empty, never everything", func(t *testing.T) {
		got := Filter(expenses, Range{To: day(2024, 12, 31).Time}, ExpenseDate)
		assert.Empty(t, got)
	})

	t.Run("earning uses received date then creation date", func(t *testing.T) {
		earnings := []models.Earning{
			{ID: "a", ReceivedDate: day(2024, 5, 2), CreationDate: day(2024, 4, 20)},
			{ID: "b", CreationDate: day(2024, 5, 3)},
		}
		got := Filter(earnings, rng(day(2024, 5, 1), day(2024, 5, 31)), EarningDate)
		assert.Len(t, got, 2)
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := append([]models.Expense(nil), expenses...)
		_ = Filter(expenses, rng(day(2024, 3, 1), day(2024, 3, 31)), ExpenseDate)
		assert.Equal(t, before, expenses)
	})
}

func TestTotals(t *testing.T) {
	earnings := []models.Earning{{Value: dec("3000")}, {Value: dec("500.50"), Recurring: true}}
	expenses := []models.Expense{
		{Value: dec("1200"), Status: models.ExpenseStatusPaid},
		{Value: dec("300"), Status: models.ExpenseStatusPending},
		{Value: dec("99.90"), Status: models.ExpenseStatusPaid},
	}
	investments := []models.Investment{{Value: dec("1000")}}

	assert.True(t, Total([]models.Earning{}).IsZero())
	assert.Equal(t, "3500.5", Total(earnings).String())
	assert.Equal(t, "1299.9", PaidTotal(expenses).String())
	assert.Equal(t, "500.5", RecurringTotal(earnings).String())

	want := Total(earnings).Sub(PaidTotal(expenses)).Sub(Total(investments))
	assert.True(t, AccountBalance(earnings, expenses, investments).Equal(want))
	assert.Equal(t, "1200.6", AccountBalance(earnings, expenses, investments).String())
	assert.Equal(t, "900.6", ProjectedBalance(earnings, expenses, investments).String())
}

func TestOverdue(t *testing.T) {
	today := day(2024, 6, 10).Add(15 * time.Hour)
	expenses := []models.Expense{
		{ID: "late", Status: models.ExpenseStatusPending, DueDate: day(2024, 6, 9)},
		{ID: "today", Status: models.ExpenseStatusPending, DueDate: day(2024, 6, 10)},
		{ID: "paid", Status: models.ExpenseStatusPaid, DueDate: day(2024, 6, 1)},
		{ID: "flagged", Status: models.ExpenseStatusOverdue, DueDate: day(2024, 5, 1)},
		{ID: "nodate", Status: models.ExpenseStatusPending},
	}
	got := Overdue(expenses, today)
	require.Len(t, got, 2)
	assert.Equal(t, models.ID("late"), got[0].ID)
	assert.Equal(t, models.ID("flagged"), got[1].ID)
}
