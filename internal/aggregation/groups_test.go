package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/models"
)

func TestGroupByCategory(t *testing.T) {
	food := &models.Category{ID: "1", Name: "Alimentação", Color: "#ff0000"}
	rent := &models.Category{ID: "2", Name: "Moradia"}
	expenses := []models.Expense{
		{Value: dec("50"), Category: food},
		{Value: dec("800"), Category: rent},
		{Value: dec("25"), Category: nil},
		{Value: dec("25"), Category: food},
	}

	groups := GroupByCategory(expenses)
	require.Len(t, groups, 3)
	assert.Equal(t, "Alimentação", groups[0].Name)
	assert.Equal(t, "#ff0000", groups[0].Color)
	assert.Equal(t, "75", groups[0].Total.String())
	assert.Equal(t, "Moradia", groups[1].Name)
	assert.Equal(t, Uncategorized, groups[2].Name)
	assert.Equal(t, "8.3", groups[0].Percent.String())

	t.Run("partition sums to total", func(t *testing.T) {
		sum := dec("0")
		for _, g := range groups {
			sum = sum.Add(g.Total)
		}
		assert.True(t, sum.Equal(Total(expenses)))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GroupByCategory(nil))
	})
}

func TestGroupByDay(t *testing.T) {
	expenses := []models.Expense{
		{Value: dec("10"), DueDate: day(2024, 3, 15)},
		{Value: dec("5"), DueDate: day(2024, 2, 28)},
		{Value: dec("7"), CreationDate: day(2024, 3, 15)},
		{Value: dec("1"), DueDate: day(2023, 3, 15)},
		{Value: dec("99")},
	}

	got := GroupByDay(expenses, models.Location())
	require.Len(t, got, 3)
	assert.Equal(t, "15/03", got[0].Label)
	assert.Equal(t, 2023, got[0].Date.Year(), "same day/month of another year is a separate day")
	assert.Equal(t, "28/02", got[1].Label)
	assert.Equal(t, "15/03", got[2].Label)
	assert.Equal(t, "17", got[2].Total.String())
}

func TestGroupByInvestmentType(t *testing.T) {
	investments := []models.Investment{
		{Value: dec("100"), InvestmentType: models.InvestmentTypeCDI},
		{Value: dec("50"), InvestmentType: models.InvestmentTypeCrypto},
		{Value: dec("25"), InvestmentType: models.InvestmentTypeCDI},
	}
	got := GroupByInvestmentType(investments)
	require.Len(t, got, 2)
	assert.Equal(t, models.InvestmentTypeCDI, got[0].Type)
	assert.Equal(t, "125", got[0].Total.String())
	assert.Equal(t, 2, got[0].Count)
}
