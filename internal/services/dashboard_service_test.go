package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"finboard/internal/aggregation"
	"finboard/internal/models"
	"finboard/internal/testutil"
)

func march(t *testing.T) aggregation.Range {
	t.Helper()
	loc := models.Location()
	return aggregation.NewRange(
		time.Date(2024, time.March, 1, 0, 0, 0, 0, loc),
		time.Date(2024, time.March, 31, 0, 0, 0, 0, loc),
		loc,
	)
}

// seedDashboard stores a small month of activity and logs in.
func seedDashboard(t *testing.T, e *env) context.Context {
	t.Helper()
	food := e.fb.Seed("categories", e.user.ID, testutil.TestCategory("Alimentação"))
	e.fb.Seed("expenses", e.user.ID, testutil.TestExpense("100", models.NewDate(2024, 3, 5), testutil.Ref(food)))
	e.fb.Seed("expenses", e.user.ID, testutil.TestExpense("50", models.NewDate(2024, 3, 20), nil))
	e.fb.Seed("expenses", e.user.ID, testutil.TestExpense("30", models.NewDate(2024, 2, 10), nil))
	e.fb.Seed("earnings", e.user.ID, testutil.TestEarning("1000", models.NewDate(2024, 3, 1)))
	return e.login(t)
}

func TestDashboardSummary(t *testing.T) {
	e := newEnv(t)
	ctx := seedDashboard(t, e)
	svc := NewDashboardService(e.workspaces)

	summary, err := svc.Summary(ctx, march(t))
	testutil.AssertNoError(t, err)

	if summary.Days != 31 {
		t.Errorf("expected 31 days, got %d", summary.Days)
	}
	if !summary.Period.Expenses.Equal(testutil.Money("150")) {
		t.Errorf("expected period expenses 150, got %s", summary.Period.Expenses)
	}
	if !summary.Period.Earnings.Equal(testutil.Money("1000")) {
		t.Errorf("expected period earnings 1000, got %s", summary.Period.Earnings)
	}
	if len(summary.ByCategory) != 2 {
		t.Errorf("expected 2 category groups, got %d", len(summary.ByCategory))
	}
}

func TestDashboardInvalidRange(t *testing.T) {
	e := newEnv(t)
	ctx := e.login(t)
	svc := NewDashboardService(e.workspaces)
	r := march(t)
	backwards := aggregation.Range{From: r.To, To: r.From}

	_, err := svc.Summary(ctx, backwards)
	testutil.AssertAppError(t, err, "INVALID_RANGE")

	_, err = svc.ExpensesByDay(ctx, aggregation.Range{})
	testutil.AssertAppError(t, err, "INVALID_RANGE")
}

func TestDashboardGroups(t *testing.T) {
	e := newEnv(t)
	ctx := seedDashboard(t, e)
	svc := NewDashboardService(e.workspaces)

	groups, err := svc.ExpensesByCategory(ctx, march(t))
	testutil.AssertNoError(t, err)
	if groups[0].Name != "Alimentação" || !groups[0].Total.Equal(testutil.Money("100")) {
		t.Errorf("unexpected first group: %+v", groups[0])
	}

	days, err := svc.ExpensesByDay(ctx, march(t))
	testutil.AssertNoError(t, err)
	if len(days) != 2 || days[0].Label != "05/03" {
		t.Errorf("unexpected days: %+v", days)
	}
}

func TestDashboardCharts(t *testing.T) {
	e := newEnv(t)
	ctx := seedDashboard(t, e)
	svc := NewDashboardService(e.workspaces)
	pngMagic := []byte("\x89PNG")

	daily, err := svc.DailyChart(ctx, march(t))
	testutil.AssertNoError(t, err)
	if !bytes.HasPrefix(daily, pngMagic) {
		t.Error("expected a PNG")
	}

	pie, err := svc.CategoryChart(ctx, march(t))
	testutil.AssertNoError(t, err)
	if !bytes.HasPrefix(pie, pngMagic) {
		t.Error("expected a PNG")
	}

	loc := models.Location()
	empty := aggregation.NewRange(time.Date(2023, 1, 1, 0, 0, 0, 0, loc), time.Date(2023, 1, 31, 0, 0, 0, 0, loc), loc)
	_, err = svc.DailyChart(ctx, empty)
	testutil.AssertAppError(t, err, "NO_DATA")
}

func TestDashboardInvestments(t *testing.T) {
	e := newEnv(t)
	objID := e.fb.Seed("objectives", e.user.ID, testutil.TestObjective("1000"))
	invID := e.fb.Seed("investments", e.user.ID, testutil.TestInvestment("250", models.InvestmentTypeFIIs, 12, testutil.Ref(objID)))
	ctx := e.login(t)
	svc := NewDashboardService(e.workspaces)

	ret, err := svc.InvestmentReturn(ctx, invID)
	testutil.AssertNoError(t, err)
	// 250 × 12% over 12 months, untaxed.
	if !ret.Net.Equal(testutil.Money("30")) {
		t.Errorf("expected net 30, got %s", ret.Net)
	}

	all, err := svc.InvestmentReturns(ctx)
	testutil.AssertNoError(t, err)
	if len(all) != 1 {
		t.Errorf("expected 1 return, got %d", len(all))
	}

	_, err = svc.InvestmentReturn(ctx, "404")
	testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")

	progress, err := svc.ObjectiveProgress(ctx, objID)
	testutil.AssertNoError(t, err)
	if !progress.Percent.Equal(testutil.Money("25")) {
		t.Errorf("expected 25%%, got %s", progress.Percent)
	}

	_, err = svc.ObjectiveProgress(ctx, "404")
	testutil.AssertAppError(t, err, "OBJECTIVE_NOT_FOUND")
}
