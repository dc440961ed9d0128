package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"finboard/internal/models"
)

func TestDelta(t *testing.T) {
	assert.Equal(t, "0", Delta(dec("0"), dec("0")).String())
	assert.Equal(t, "100", Delta(dec("10"), dec("0")).String())
	assert.Equal(t, "50", Delta(dec("150"), dec("100")).String())
	assert.Equal(t, "-33.3", Delta(dec("200"), dec("300")).String())
}

func TestComparable(t *testing.T) {
	assert.True(t, Comparable(rng(day(2024, 2, 1), day(2024, 2, 28))))
	assert.True(t, Comparable(rng(day(2024, 1, 1), day(2024, 1, 31))))
	assert.False(t, Comparable(rng(day(2024, 1, 1), day(2024, 1, 27))))
	assert.False(t, Comparable(rng(day(2024, 1, 1), day(2024, 2, 1))))
}

func TestCompare(t *testing.T) {
	expenses := []models.Expense{
		{Value: dec("100"), DueDate: day(2024, 2, 10)},
		{Value: dec("50"), DueDate: day(2024, 3, 1)},
		{Value: dec("100"), DueDate: day(2024, 3, 20)},
		{Value: dec("1000"), DueDate: day(2024, 1, 31)},
	}

	t.Run("month window", func(t *testing.T) {
		r := rng(day(2024, 3, 1), day(2024, 3, 31))
		c := Compare(expenses, r, ExpenseDate, Total[models.Expense])
		assert.True(t, c.Available)
		assert.Equal(t, "150", c.Current.String())
		// previous window is Jan 30 .. Feb 29: 31 days ending the day before Mar 1
		assert.Equal(t, "1100", c.Previous.String())
		assert.Equal(t, "-86.4", c.Delta.String())
	})

	t.Run("boundary day belongs to the current window only", func(t *testing.T) {
		items := []models.Expense{{Value: dec("10"), DueDate: day(2024, 3, 1)}}
		c := Compare(items, rng(day(2024, 3, 1), day(2024, 3, 31)), ExpenseDate, Total[models.Expense])
		assert.Equal(t, "10", c.Current.String())
		assert.True(t, c.Previous.IsZero())
		assert.Equal(t, "100", c.Delta.String())
	})

	t.Run("not a month", func(t *testing.T) {
		c := Compare(expenses, rng(day(2024, 3, 1), day(2024, 3, 7)), ExpenseDate, Total[models.Expense])
		assert.False(t, c.Available)
		assert.True(t, c.Delta.IsZero())
	})

	t.Run("both empty", func(t *testing.T) {
		c := Compare([]models.Expense{}, rng(day(2024, 3, 1), day(2024, 3, 31)), ExpenseDate, Total[models.Expense])
		assert.True(t, c.Available)
		assert.Equal(t, "0", c.Delta.String())
	})
}

func TestSummarize(t *testing.T) {
	cat := &models.Category{ID: "c", Name: "Transporte"}
	snap := models.Snapshot{
		Earnings: []models.Earning{
			{ID: "e1", Value: dec("2000"), ReceivedDate: day(2024, 3, 5), Recurring: true},
			{ID: "e2", Value: dec("500"), ReceivedDate: day(2024, 1, 5)},
		},
		Expenses: []models.Expense{
			{ID: "x1", Value: dec("300"), DueDate: day(2024, 3, 10), Status: models.ExpenseStatusPaid, Category: cat},
			{ID: "x2", Value: dec("200"), DueDate: day(2024, 3, 12), Status: models.ExpenseStatusPending},
		},
		Investments: []models.Investment{
			{ID: "i1", Value: dec("400"), CreationDate: day(2024, 3, 2), ObjectiveID: idp("o1")},
		},
		Objectives: []models.Objective{{ID: "o1", Name: "Viagem", Target: dec("1000")}},
	}

	s := Summarize(snap, rng(day(2024, 3, 1), day(2024, 3, 31)), day(2024, 3, 20).Add(10*time.Hour))

	assert.Equal(t, 31, s.Days)
	assert.Equal(t, "1800", s.Balances.Account.String())
	assert.Equal(t, "1600", s.Balances.Projected.String())
	assert.Equal(t, "2000", s.Period.Earnings.String())
	assert.Equal(t, "2000", s.Period.RecurringEarnings.String())
	assert.Equal(t, "500", s.Period.Expenses.String())
	assert.Equal(t, "300", s.Period.PaidExpenses.String())
	assert.Equal(t, "1300", s.Period.Balance.String())
	assert.True(t, s.Comparisons.Expenses.Available)
	assert.Len(t, s.ByCategory, 2)
	assert.Len(t, s.ByDay, 2)
	assert.Len(t, s.Objectives, 1)
	assert.Equal(t, "40", s.Objectives[0].Percent.String())
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, "200", s.OverdueTotal.String())
}
