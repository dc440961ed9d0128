package validator

import (
	"testing"

	"github.com/shopspring/decimal"

	"finboard/internal/models"
)

func TestNew_ExpenseRules(t *testing.T) {
	v := New()

	valid := models.Expense{
		Name:   "Aluguel",
		Value:  decimal.NewFromInt(900),
		Status: models.ExpenseStatusPending,
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}

	tests := []struct {
		name string
		edit func(e *models.Expense)
		want string
	}{
		{"negative value", func(e *models.Expense) { e.Value = decimal.NewFromInt(-1) }, "value must be at least 0"},
		{"missing name", func(e *models.Expense) { e.Name = "" }, "name is required"},
		{"unknown status", func(e *models.Expense) { e.Status = "LATE" }, "status is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.edit(&e)
			err := v.Struct(e)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := Describe(err); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_InvestmentAndCategoryRules(t *testing.T) {
	v := New()

	inv := models.Investment{
		Name:           "Tesouro Selic",
		Value:          decimal.NewFromInt(100),
		Percentage:     decimal.NewFromInt(11),
		Months:         0,
		InvestmentType: models.InvestmentTypeTesouro,
	}
	if err := v.Struct(inv); err == nil {
		t.Error("months=0 should be rejected")
	}
	inv.Months = 12
	inv.InvestmentType = "LCI"
	if err := v.Struct(inv); err == nil {
		t.Error("unknown investment type should be rejected")
	}

	cat := models.Category{Name: "Lazer", Color: "blue"}
	if err := v.Struct(cat); err == nil {
		t.Error("non-hex color should be rejected")
	}
	cat.Color = "#00ff00"
	if err := v.Struct(cat); err != nil {
		t.Errorf("expected valid category, got %v", err)
	}
}
