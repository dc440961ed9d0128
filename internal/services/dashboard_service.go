package services

import (
	"context"
	"errors"
	"time"

	"finboard/internal/aggregation"
	"finboard/internal/charts"
	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// dashboardService derives the dashboard figures from the user's workspace.
type dashboardService struct {
	workspaces WorkspaceServicer
	now        func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(workspaces WorkspaceServicer) DashboardServicer {
	return &dashboardService{workspaces: workspaces, now: time.Now}
}

func (s *dashboardService) snapshot(ctx context.Context) (models.Snapshot, error) {
	st, err := s.workspaces.Workspace(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

func (s *dashboardService) expenses(ctx context.Context, r aggregation.Range) ([]models.Expense, error) {
	if !r.Valid() {
		return nil, apperrors.ErrInvalidRange
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.Filter(snap.Expenses, r, aggregation.ExpenseDate), nil
}

// Summary returns every figure of the dashboard page for r.
func (s *dashboardService) Summary(ctx context.Context, r aggregation.Range) (*aggregation.Summary, error) {
	if !r.Valid() {
		return nil, apperrors.ErrInvalidRange
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := aggregation.Summarize(snap, r, s.now().In(models.Location()))
	return &summary, nil
}

// ExpensesByCategory groups the expenses of r by category.
func (s *dashboardService) ExpensesByCategory(ctx context.Context, r aggregation.Range) ([]aggregation.CategoryTotal, error) {
	expenses, err := s.expenses(ctx, r)
	if err != nil {
		return nil, err
	}
	return aggregation.GroupByCategory(expenses), nil
}

// ExpensesByDay groups the expenses of r by calendar day.
func (s *dashboardService) ExpensesByDay(ctx context.Context, r aggregation.Range) ([]aggregation.DayTotal, error) {
	expenses, err := s.expenses(ctx, r)
	if err != nil {
		return nil, err
	}
	return aggregation.GroupByDay(expenses, models.Location()), nil
}

// DailyChart renders the expenses of r per day as a PNG.
func (s *dashboardService) DailyChart(ctx context.Context, r aggregation.Range) ([]byte, error) {
	days, err := s.ExpensesByDay(ctx, r)
	if err != nil {
		return nil, err
	}
	return chartResult(charts.DailyExpenses(days))
}

// CategoryChart renders the expenses of r per category as a PNG.
func (s *dashboardService) CategoryChart(ctx context.Context, r aggregation.Range) ([]byte, error) {
	groups, err := s.ExpensesByCategory(ctx, r)
	if err != nil {
		return nil, err
	}
	return chartResult(charts.ExpensesByCategory(groups))
}

func chartResult(png []byte, err error) ([]byte, error) {
	if errors.Is(err, charts.ErrNoData) {
		return nil, apperrors.ErrNoData
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return png, nil
}

// InvestmentReturn projects the net return of one investment.
func (s *dashboardService) InvestmentReturn(ctx context.Context, id models.ID) (*aggregation.NetReturn, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range snap.Investments {
		if inv.ID == id {
			ret := aggregation.ComputeNetReturn(inv)
			return &ret, nil
		}
	}
	return nil, apperrors.ErrInvestmentNotFound
}

// InvestmentReturns projects the net return of every investment.
func (s *dashboardService) InvestmentReturns(ctx context.Context) ([]aggregation.NetReturn, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return aggregation.NetReturns(snap.Investments), nil
}

// ObjectiveProgress reports how far the linked investments are towards one
// objective.
func (s *dashboardService) ObjectiveProgress(ctx context.Context, id models.ID) (*aggregation.Progress, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range snap.Objectives {
		if o.ID == id {
			p := aggregation.ObjectiveProgress(o, snap.Investments)
			return &p, nil
		}
	}
	return nil, apperrors.ErrObjectiveNotFound
}
