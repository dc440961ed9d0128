package state

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finboard/internal/gateway"
	"finboard/internal/models"
	"finboard/internal/notify"
	"finboard/internal/session"
	"finboard/internal/testutil"
)

type fixture struct {
	fb    *testutil.FakeBackend
	user  models.User
	ctx   context.Context
	store *Store
	inbox *notify.Inbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	user := fb.AddUser(testutil.TestUser(), "segredo")
	client := gateway.NewClient(fb.URL, gateway.WithLogger(zap.NewNop().Sugar()), gateway.WithRateLimit(1000))
	inbox := notify.NewInbox(0)
	ctx := session.WithSession(context.Background(), &session.Session{ID: "s", User: user.Profile(), Token: user.Token})
	return &fixture{
		fb:    fb,
		user:  user,
		ctx:   ctx,
		store: NewStore(user.ID, client, inbox),
		inbox: inbox,
	}
}

func TestFetchAllHydratesExpenses(t *testing.T) {
	f := newFixture(t)
	food := f.fb.Seed("categories", f.user.ID, testutil.TestCategory("Alimentação"))
	f.fb.Seed("expenses", f.user.ID, testutil.TestExpense("50", models.NewDate(2024, 3, 1), &food))
	f.fb.Seed("expenses", f.user.ID, testutil.TestExpense("20", models.NewDate(2024, 3, 2), nil))
	f.fb.Seed("expenses", f.user.ID, testutil.TestExpense("10", models.NewDate(2024, 3, 3), testutil.Ref("999")))
	f.fb.Seed("earnings", "other-user", testutil.TestEarning("1", models.NewDate(2024, 3, 1)))

	require.NoError(t, f.store.FetchAll(f.ctx))
	assert.True(t, f.store.Loaded())

	expenses := f.store.Expenses.Items()
	require.Len(t, expenses, 3)
	require.NotNil(t, expenses[0].Category)
	assert.Equal(t, "Alimentação", expenses[0].Category.Name)
	assert.Nil(t, expenses[1].Category)
	assert.Nil(t, expenses[2].Category, "unknown category id stays unlinked")
	assert.Equal(t, 0, f.store.Earnings.Len(), "other users' records are not fetched")
}

func TestFetchAllPartialFailure(t *testing.T) {
	f := newFixture(t)
	f.fb.Seed("categories", f.user.ID, testutil.TestCategory("Lazer"))
	f.fb.Fail("GET /investments", http.StatusInternalServerError, "")

	err := f.store.FetchAll(f.ctx)
	require.Equal(t, "BACKEND_UNAVAILABLE", testutil.ErrorCode(err))

	st := f.store.Statuses()
	assert.Equal(t, Error, st.Investments)
	assert.Empty(t, f.store.Investments.Items())
	assert.Equal(t, Loaded, st.Categories)
	assert.Equal(t, 1, f.store.Categories.Len())

	notes := f.inbox.Drain(f.user.ID.String())
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
}

func TestAddUpdateDeleteExpense(t *testing.T) {
	f := newFixture(t)
	catID := f.fb.Seed("categories", f.user.ID, testutil.TestCategory("Transporte"))
	require.NoError(t, f.store.FetchAll(f.ctx))

	created, err := f.store.AddExpense(f.ctx, testutil.TestExpense("35.50", models.NewDate(2024, 5, 10), &catID))
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, created.UserID)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Transporte", created.Category.Name)
	assert.Equal(t, 1, f.store.Expenses.Len())

	created.CategoryID = nil
	created.Status = models.ExpenseStatusPaid
	updated, err := f.store.UpdateExpense(f.ctx, created)
	require.NoError(t, err)
	assert.Nil(t, updated.Category)
	stored, ok := f.store.Expenses.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.ExpenseStatusPaid, stored.Status)

	require.NoError(t, f.store.DeleteExpense(f.ctx, created.ID))
	assert.Equal(t, 0, f.store.Expenses.Len())

	notes := f.inbox.Drain(f.user.ID.String())
	require.Len(t, notes, 3)
	assert.Equal(t, "Despesa criada com sucesso", notes[0].Message)
	assert.Equal(t, "Despesa excluída com sucesso", notes[2].Message)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	f := newFixture(t)
	ids := make([]models.ID, 0, 4)
	for _, v := range []string{"10", "20", "30", "40"} {
		ids = append(ids, f.fb.Seed("earnings", f.user.ID, testutil.TestEarning(v, models.NewDate(2024, 1, 1))))
	}
	require.NoError(t, f.store.FetchAll(f.ctx))

	require.NoError(t, f.store.DeleteEarning(f.ctx, ids[1]))

	got := f.store.Earnings.Items()
	require.Len(t, got, 3)
	assert.Equal(t, []models.ID{ids[0], ids[2], ids[3]}, []models.ID{got[0].ID, got[1].ID, got[2].ID})
}

func TestCategoryChangesRehydrate(t *testing.T) {
	f := newFixture(t)
	catID := f.fb.Seed("categories", f.user.ID, testutil.TestCategory("Casa"))
	f.fb.Seed("expenses", f.user.ID, testutil.TestExpense("100", models.NewDate(2024, 2, 1), &catID))
	f.fb.Seed("expenses", f.user.ID, testutil.TestExpense("200", models.NewDate(2024, 2, 2), &catID))
	require.NoError(t, f.store.FetchAll(f.ctx))

	cat, ok := f.store.Categories.Get(catID)
	require.True(t, ok)
	cat.Name = "Moradia"
	_, err := f.store.UpdateCategory(f.ctx, cat)
	require.NoError(t, err)
	for _, e := range f.store.Expenses.Items() {
		require.NotNil(t, e.Category)
		assert.Equal(t, "Moradia", e.Category.Name)
	}

	require.NoError(t, f.store.DeleteCategory(f.ctx, catID))
	for _, e := range f.store.Expenses.Items() {
		assert.Nil(t, e.Category, "deleting a category clears it from expenses")
		require.NotNil(t, e.CategoryID)
	}
}

func TestRejectedMutationLeavesStateAlone(t *testing.T) {
	f := newFixture(t)
	f.fb.Seed("objectives", f.user.ID, testutil.TestObjective("5000"))
	require.NoError(t, f.store.FetchAll(f.ctx))
	f.fb.Fail("POST /objectives", http.StatusBadRequest, "Meta inválida")

	_, err := f.store.AddObjective(f.ctx, testutil.TestObjective("100"))
	require.Equal(t, "BACKEND_REJECTED", testutil.ErrorCode(err))
	assert.Equal(t, 1, f.store.Objectives.Len())

	notes := f.inbox.Drain(f.user.ID.String())
	require.Len(t, notes, 1)
	assert.Equal(t, "Meta inválida", notes[0].Message)
}

func TestInvalidInputNeverReachesBackend(t *testing.T) {
	f := newFixture(t)
	bad := testutil.TestInvestment("100", models.InvestmentTypeCDI, 0, nil)

	_, err := f.store.AddInvestment(f.ctx, bad)
	require.Equal(t, "INVALID_INPUT", testutil.ErrorCode(err))
	assert.Empty(t, f.fb.Requests())
}

func TestResetAndSnapshot(t *testing.T) {
	f := newFixture(t)
	f.fb.Seed("investments", f.user.ID, testutil.TestInvestment("1000", models.InvestmentTypeFIIs, 12, nil))
	require.NoError(t, f.store.FetchAll(f.ctx))

	snap := f.store.Snapshot()
	require.Len(t, snap.Investments, 1)
	snap.Investments[0].Name = "mutated"
	assert.NotEqual(t, "mutated", f.store.Investments.Items()[0].Name)

	f.store.Reset()
	assert.Equal(t, Statuses{}, f.store.Statuses())
	assert.Empty(t, f.store.Snapshot().Investments)
}
