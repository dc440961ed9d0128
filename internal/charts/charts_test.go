package charts

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finboard/internal/aggregation"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestDailyExpenses(t *testing.T) {
	days := []aggregation.DayTotal{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Label: "01/03", Total: decimal.NewFromInt(120)},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Label: "02/03", Total: decimal.RequireFromString("45.90")},
	}
	img, err := DailyExpenses(days)
	if err != nil {
		t.Fatalf("DailyExpenses returned error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestDailyExpenses_AllZero(t *testing.T) {
	days := []aggregation.DayTotal{{Label: "01/03", Total: decimal.Zero}}
	img, err := DailyExpenses(days)
	if err != nil {
		t.Fatalf("DailyExpenses returned error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestExpensesByCategory(t *testing.T) {
	groups := []aggregation.CategoryTotal{
		{Name: "Mercado", Color: "#16a34a", Total: decimal.NewFromInt(300), Percent: decimal.NewFromInt(75)},
		{Name: aggregation.Uncategorized, Total: decimal.NewFromInt(100), Percent: decimal.NewFromInt(25)},
		{Name: "Vazia", Total: decimal.Zero},
	}
	img, err := ExpensesByCategory(groups)
	if err != nil {
		t.Fatalf("ExpensesByCategory returned error: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestNoData(t *testing.T) {
	if _, err := DailyExpenses(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("DailyExpenses(nil) error = %v, want ErrNoData", err)
	}
	zero := []aggregation.CategoryTotal{{Name: "x", Total: decimal.Zero}}
	if _, err := ExpensesByCategory(zero); !errors.Is(err, ErrNoData) {
		t.Errorf("ExpensesByCategory(zero) error = %v, want ErrNoData", err)
	}
}
