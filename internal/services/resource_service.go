package services

import (
	"context"

	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/state"
)

// resourceService serves one collection of the user's workspace. Reads come
// from memory; writes go through the state store, which calls the backend.
type resourceService[T state.Keyed] struct {
	workspaces WorkspaceServicer
	notFound   *apperrors.AppError

	collection func(*state.Store) *state.Collection[T]
	withID     func(T, models.ID) T
	create     func(*state.Store, context.Context, T) (T, error)
	update     func(*state.Store, context.Context, T) (T, error)
	remove     func(*state.Store, context.Context, models.ID) error
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(workspaces WorkspaceServicer) CategoryServicer {
	return &resourceService[models.Category]{
		workspaces: workspaces,
		notFound:   apperrors.ErrCategoryNotFound,
		collection: func(s *state.Store) *state.Collection[models.Category] { return s.Categories },
		withID:     func(c models.Category, id models.ID) models.Category { c.ID = id; return c },
		create:     (*state.Store).AddCategory,
		update:     (*state.Store).UpdateCategory,
		remove:     (*state.Store).DeleteCategory,
	}
}

// NewEarningService creates a new EarningServicer.
func NewEarningService(workspaces WorkspaceServicer) EarningServicer {
	return &resourceService[models.Earning]{
		workspaces: workspaces,
		notFound:   apperrors.ErrEarningNotFound,
		collection: func(s *state.Store) *state.Collection[models.Earning] { return s.Earnings },
		withID:     func(e models.Earning, id models.ID) models.Earning { e.ID = id; return e },
		create:     (*state.Store).AddEarning,
		update:     (*state.Store).UpdateEarning,
		remove:     (*state.Store).DeleteEarning,
	}
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(workspaces WorkspaceServicer) ExpenseServicer {
	return &resourceService[models.Expense]{
		workspaces: workspaces,
		notFound:   apperrors.ErrExpenseNotFound,
		collection: func(s *state.Store) *state.Collection[models.Expense] { return s.Expenses },
		withID:     func(e models.Expense, id models.ID) models.Expense { e.ID = id; return e },
		create:     (*state.Store).AddExpense,
		update:     (*state.Store).UpdateExpense,
		remove:     (*state.Store).DeleteExpense,
	}
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(workspaces WorkspaceServicer) InvestmentServicer {
	return &resourceService[models.Investment]{
		workspaces: workspaces,
		notFound:   apperrors.ErrInvestmentNotFound,
		collection: func(s *state.Store) *state.Collection[models.Investment] { return s.Investments },
		withID:     func(i models.Investment, id models.ID) models.Investment { i.ID = id; return i },
		create:     (*state.Store).AddInvestment,
		update:     (*state.Store).UpdateInvestment,
		remove:     (*state.Store).DeleteInvestment,
	}
}

// NewObjectiveService creates a new ObjectiveServicer.
func NewObjectiveService(workspaces WorkspaceServicer) ObjectiveServicer {
	return &resourceService[models.Objective]{
		workspaces: workspaces,
		notFound:   apperrors.ErrObjectiveNotFound,
		collection: func(s *state.Store) *state.Collection[models.Objective] { return s.Objectives },
		withID:     func(o models.Objective, id models.ID) models.Objective { o.ID = id; return o },
		create:     (*state.Store).AddObjective,
		update:     (*state.Store).UpdateObjective,
		remove:     (*state.Store).DeleteObjective,
	}
}

// List pages through the collection in its current order. A collection whose
// last fetch failed reports that failure.
func (s *resourceService[T]) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	col, err := s.loaded(ctx)
	if err != nil {
		return nil, err
	}
	resp := pagination.Slice(col.Items(), page)
	return &resp, nil
}

// Get returns one item by id.
func (s *resourceService[T]) Get(ctx context.Context, id models.ID) (*T, error) {
	col, err := s.loaded(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := col.Get(id)
	if !ok {
		return nil, s.notFound
	}
	return &item, nil
}

// Create sends a new item to the backend and records it locally.
func (s *resourceService[T]) Create(ctx context.Context, item T) (*T, error) {
	st, err := s.workspaces.Workspace(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.create(st, ctx, item)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the item with the given id. Unknown ids are rejected
// without calling the backend.
func (s *resourceService[T]) Update(ctx context.Context, id models.ID, item T) (*T, error) {
	st, err := s.workspaces.Workspace(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := s.collection(st).Get(id); !ok {
		return nil, s.notFound
	}
	updated, err := s.update(st, ctx, s.withID(item, id))
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the item with the given id. Unknown ids are rejected
// without calling the backend.
func (s *resourceService[T]) Delete(ctx context.Context, id models.ID) error {
	st, err := s.workspaces.Workspace(ctx)
	if err != nil {
		return err
	}
	if _, ok := s.collection(st).Get(id); !ok {
		return s.notFound
	}
	return s.remove(st, ctx, id)
}

func (s *resourceService[T]) loaded(ctx context.Context) (*state.Collection[T], error) {
	st, err := s.workspaces.Workspace(ctx)
	if err != nil {
		return nil, err
	}
	col := s.collection(st)
	if col.Status() == state.Error {
		return nil, gateway.ToAppError(col.Err())
	}
	return col, nil
}
