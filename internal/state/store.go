package state

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/notify"
)

// Backend is the set of backend collections a Store mirrors.
type Backend interface {
	Categories() gateway.Resource[models.Category]
	Earnings() gateway.Resource[models.Earning]
	Expenses() gateway.Resource[models.Expense]
	Investments() gateway.Resource[models.Investment]
	Objectives() gateway.Resource[models.Objective]
}

// Statuses reports the load state of every collection.
type Statuses struct {
	Categories  Status `json:"categories"`
	Earnings    Status `json:"earnings"`
	Expenses    Status `json:"expenses"`
	Investments Status `json:"investments"`
	Objectives  Status `json:"objectives"`
}

// Store is the in-memory copy of one user's records. Every change goes to the
// backend first; local state only changes once the backend has accepted it.
// Failures are logged, sent to the notifier and returned.
type Store struct {
	userID   models.ID
	backend  Backend
	notifier notify.Notifier

	Categories  *Collection[models.Category]
	Earnings    *Collection[models.Earning]
	Expenses    *Collection[models.Expense]
	Investments *Collection[models.Investment]
	Objectives  *Collection[models.Objective]
}

// NewStore creates an empty store for userID.
func NewStore(userID models.ID, backend Backend, notifier notify.Notifier) *Store {
	if notifier == nil {
		notifier = notify.Fanout{}
	}
	return &Store{
		userID:      userID,
		backend:     backend,
		notifier:    notifier,
		Categories:  NewCollection[models.Category](),
		Earnings:    NewCollection[models.Earning](),
		Expenses:    NewCollection[models.Expense](),
		Investments: NewCollection[models.Investment](),
		Objectives:  NewCollection[models.Objective](),
	}
}

// UserID returns the owner of the store.
func (s *Store) UserID() models.ID { return s.userID }

// FetchAll loads the five collections concurrently, then links expenses to
// their categories. A failing collection ends in Error without stopping the
// others; the first failure is returned.
func (s *Store) FetchAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return fetch(ctx, s.userID, s.Categories, s.backend.Categories()) })
	g.Go(func() error { return fetch(ctx, s.userID, s.Earnings, s.backend.Earnings()) })
	g.Go(func() error { return fetch(ctx, s.userID, s.Expenses, s.backend.Expenses()) })
	g.Go(func() error { return fetch(ctx, s.userID, s.Investments, s.backend.Investments()) })
	g.Go(func() error { return fetch(ctx, s.userID, s.Objectives, s.backend.Objectives()) })
	err := g.Wait()

	s.hydrateExpenses()

	if err != nil {
		return s.report(ctx, "fetch", err)
	}
	return nil
}

func fetch[T gateway.Entity](ctx context.Context, userID models.ID, col *Collection[T], res gateway.Resource[T]) error {
	col.Begin()
	items, err := res.ListByUser(ctx, userID)
	if err != nil {
		logger.Get().Errorw("failed to fetch collection", "collection", res.Name(), "user_id", userID, "error", err)
		col.Fail(err)
		return fmt.Errorf("fetch %s: %w", res.Name(), err)
	}
	col.Succeed(items)
	return nil
}

// Reset forgets everything, as on logout.
func (s *Store) Reset() {
	s.Categories.Reset()
	s.Earnings.Reset()
	s.Expenses.Reset()
	s.Investments.Reset()
	s.Objectives.Reset()
}

// Statuses returns the load state of every collection.
func (s *Store) Statuses() Statuses {
	return Statuses{
		Categories:  s.Categories.Status(),
		Earnings:    s.Earnings.Status(),
		Expenses:    s.Expenses.Status(),
		Investments: s.Investments.Status(),
		Objectives:  s.Objectives.Status(),
	}
}

// Loaded reports whether every collection has been fetched successfully.
func (s *Store) Loaded() bool {
	st := s.Statuses()
	return st.Categories == Loaded && st.Earnings == Loaded && st.Expenses == Loaded &&
		st.Investments == Loaded && st.Objectives == Loaded
}

// Snapshot returns copies of every collection.
func (s *Store) Snapshot() models.Snapshot {
	return models.Snapshot{
		Categories:  s.Categories.Items(),
		Earnings:    s.Earnings.Items(),
		Expenses:    s.Expenses.Items(),
		Investments: s.Investments.Items(),
		Objectives:  s.Objectives.Items(),
	}
}

// AddCategory creates a category.
func (s *Store) AddCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.UserID = s.userID
	return create(ctx, s, s.Categories, s.backend.Categories(), c)
}

// UpdateCategory saves a category and relinks every expense.
func (s *Store) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.UserID = s.userID
	out, err := update(ctx, s, s.Categories, s.backend.Categories(), c)
	if err == nil {
		s.hydrateExpenses()
	}
	return out, err
}

// DeleteCategory removes a category and unlinks the expenses that used it.
func (s *Store) DeleteCategory(ctx context.Context, id models.ID) error {
	err := remove(ctx, s, s.Categories, s.backend.Categories(), id)
	if err == nil {
		s.hydrateExpenses()
	}
	return err
}

// AddEarning creates an earning.
func (s *Store) AddEarning(ctx context.Context, e models.Earning) (models.Earning, error) {
	e.UserID = s.userID
	return create(ctx, s, s.Earnings, s.backend.Earnings(), e)
}

// UpdateEarning saves an earning.
func (s *Store) UpdateEarning(ctx context.Context, e models.Earning) (models.Earning, error) {
	e.UserID = s.userID
	return update(ctx, s, s.Earnings, s.backend.Earnings(), e)
}

// DeleteEarning removes an earning.
func (s *Store) DeleteEarning(ctx context.Context, id models.ID) error {
	return remove(ctx, s, s.Earnings, s.backend.Earnings(), id)
}

// AddExpense creates an expense and links its category.
func (s *Store) AddExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.UserID = s.userID
	out, err := s.backend.Expenses().Create(ctx, e)
	if err != nil {
		return models.Expense{}, s.report(ctx, "create expenses", err)
	}
	out = s.hydrate(out, s.categoryIndex())
	s.Expenses.Append(out)
	s.succeeded(ctx, "expenses", actionCreate)
	return out, nil
}

// UpdateExpense saves an expense and relinks its category.
func (s *Store) UpdateExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.UserID = s.userID
	out, err := s.backend.Expenses().Update(ctx, e)
	if err != nil {
		return models.Expense{}, s.report(ctx, "update expenses", err)
	}
	out = s.hydrate(out, s.categoryIndex())
	s.Expenses.Replace(out)
	s.succeeded(ctx, "expenses", actionUpdate)
	return out, nil
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, id models.ID) error {
	return remove(ctx, s, s.Expenses, s.backend.Expenses(), id)
}

// AddInvestment creates an investment.
func (s *Store) AddInvestment(ctx context.Context, i models.Investment) (models.Investment, error) {
	i.UserID = s.userID
	return create(ctx, s, s.Investments, s.backend.Investments(), i)
}

// UpdateInvestment saves an investment.
func (s *Store) UpdateInvestment(ctx context.Context, i models.Investment) (models.Investment, error) {
	i.UserID = s.userID
	return update(ctx, s, s.Investments, s.backend.Investments(), i)
}

// DeleteInvestment removes an investment.
func (s *Store) DeleteInvestment(ctx context.Context, id models.ID) error {
	return remove(ctx, s, s.Investments, s.backend.Investments(), id)
}

// AddObjective creates an objective.
func (s *Store) AddObjective(ctx context.Context, o models.Objective) (models.Objective, error) {
	o.UserID = s.userID
	return create(ctx, s, s.Objectives, s.backend.Objectives(), o)
}

// UpdateObjective saves an objective.
func (s *Store) UpdateObjective(ctx context.Context, o models.Objective) (models.Objective, error) {
	o.UserID = s.userID
	return update(ctx, s, s.Objectives, s.backend.Objectives(), o)
}

// DeleteObjective removes an objective.
func (s *Store) DeleteObjective(ctx context.Context, id models.ID) error {
	return remove(ctx, s, s.Objectives, s.backend.Objectives(), id)
}

func create[T gateway.Entity](ctx context.Context, s *Store, col *Collection[T], res gateway.Resource[T], item T) (T, error) {
	out, err := res.Create(ctx, item)
	if err != nil {
		var zero T
		return zero, s.report(ctx, "create "+res.Name(), err)
	}
	col.Append(out)
	s.succeeded(ctx, res.Name(), actionCreate)
	return out, nil
}

func update[T gateway.Entity](ctx context.Context, s *Store, col *Collection[T], res gateway.Resource[T], item T) (T, error) {
	out, err := res.Update(ctx, item)
	if err != nil {
		var zero T
		return zero, s.report(ctx, "update "+res.Name(), err)
	}
	col.Replace(out)
	s.succeeded(ctx, res.Name(), actionUpdate)
	return out, nil
}

func remove[T gateway.Entity](ctx context.Context, s *Store, col *Collection[T], res gateway.Resource[T], id models.ID) error {
	if err := res.Delete(ctx, id); err != nil {
		return s.report(ctx, "delete "+res.Name(), err)
	}
	col.Remove(id)
	s.succeeded(ctx, res.Name(), actionDelete)
	return nil
}

func (s *Store) categoryIndex() map[models.ID]models.Category {
	cats := s.Categories.Items()
	index := make(map[models.ID]models.Category, len(cats))
	for _, c := range cats {
		index[c.ID] = c
	}
	return index
}

func (s *Store) hydrate(e models.Expense, index map[models.ID]models.Category) models.Expense {
	e.Category = nil
	if e.CategoryID == nil {
		return e
	}
	if c, ok := index[*e.CategoryID]; ok {
		e.Category = &c
	}
	return e
}

// hydrateExpenses relinks every expense to the current categories.
func (s *Store) hydrateExpenses() {
	index := s.categoryIndex()
	s.Expenses.Update(func(e models.Expense) models.Expense {
		return s.hydrate(e, index)
	})
}

// report logs err, tells the user and returns err mapped to an AppError.
// A 401 is left to the session teardown, which notifies on its own.
func (s *Store) report(ctx context.Context, action string, err error) error {
	mapped := gateway.ToAppError(err)
	logger.Get().Errorw("backend operation failed", "user_id", s.userID, "action", action, "error", err)

	if gateway.IsUnauthorized(err) {
		return mapped
	}
	msg := apperrors.ErrBackendRejected.Message
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	s.notifier.Notify(ctx, notify.New(s.userID.String(), notify.LevelError, msg))
	return mapped
}
