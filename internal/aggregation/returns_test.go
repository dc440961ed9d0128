package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/models"
)

func TestTaxRate(t *testing.T) {
	tests := []struct {
		name string
		typ  models.InvestmentType
		days int
		want string
	}{
		{"tesouro 180", models.InvestmentTypeTesouro, 180, "0.225"},
		{"tesouro 181", models.InvestmentTypeTesouro, 181, "0.2"},
		{"cdi 360", models.InvestmentTypeCDI, 360, "0.2"},
		{"cdi 720", models.InvestmentTypeCDI, 720, "0.175"},
		{"cdi 721", models.InvestmentTypeCDI, 721, "0.15"},
		{"acoes", models.InvestmentTypeAcoes, 30, "0.15"},
		{"crypto", models.InvestmentTypeCrypto, 3000, "0.15"},
		{"fiis", models.InvestmentTypeFIIs, 30, "0"},
		{"poupanca", models.InvestmentTypePoupanca, 30, "0"},
		{"unknown", models.InvestmentType("LCI"), 30, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, TaxRate(tt.typ, tt.days).Equal(dec(tt.want)), "got %s", TaxRate(tt.typ, tt.days))
		})
	}
}

func TestComputeNetReturn(t *testing.T) {
	t.Run("fiis is untaxed", func(t *testing.T) {
		r := ComputeNetReturn(models.Investment{
			Value: dec("1000"), Percentage: dec("10"), Months: 12, InvestmentType: models.InvestmentTypeFIIs,
		})
		assert.Equal(t, "100", r.Gross.String())
		assert.True(t, r.Tax.IsZero())
		assert.Equal(t, "100", r.Net.String())
		assert.Equal(t, 360, r.HoldingDays)
	})

	t.Run("short tesouro pays 22.5 percent", func(t *testing.T) {
		inv := models.Investment{
			Value: dec("2400"), Percentage: dec("12"), Months: 5, InvestmentType: models.InvestmentTypeTesouro,
		}
		r := ComputeNetReturn(inv)
		gross := dec("2400").Mul(dec("0.01")).Mul(dec("5"))
		require.True(t, r.Gross.Equal(gross), "gross %s", r.Gross)
		assert.True(t, r.Net.Equal(gross.Mul(dec("0.775"))), "net %s", r.Net)
		assert.Equal(t, 150, r.HoldingDays)
	})
}

func TestObjectiveProgress(t *testing.T) {
	investments := []models.Investment{
		{ID: "a", Name: "CDB", Value: dec("300"), ObjectiveID: idp("o")},
		{ID: "b", Name: "Tesouro", Value: dec("900"), ObjectiveID: idp("o")},
		{ID: "c", Value: dec("50"), ObjectiveID: idp("other")},
		{ID: "d", Value: dec("70")},
	}

	t.Run("overfunded", func(t *testing.T) {
		p := ObjectiveProgress(models.Objective{ID: "o", Target: dec("1000")}, investments)
		assert.Equal(t, "1200", p.Current.String())
		assert.Equal(t, "120", p.Percent.String())
		require.Len(t, p.Segments, 2)
		assert.Equal(t, "30", p.Segments[0].Percent.String())
		assert.Equal(t, "90", p.Segments[1].Percent.String())
	})

	t.Run("zero target", func(t *testing.T) {
		p := ObjectiveProgress(models.Objective{ID: "o", Target: dec("0")}, investments)
		assert.True(t, p.Percent.IsZero())
		for _, s := range p.Segments {
			assert.True(t, s.Percent.IsZero())
		}
	})

	t.Run("no linked investments", func(t *testing.T) {
		p := ObjectiveProgress(models.Objective{ID: "none", Target: dec("10")}, investments)
		assert.True(t, p.Current.IsZero())
		assert.Empty(t, p.Segments)
	})
}
