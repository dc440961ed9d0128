package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/session"
	"finboard/internal/testutil"
)

func newTestClient(baseURL string, opts ...Option) *Client {
	opts = append([]Option{WithLogger(zap.NewNop().Sugar()), WithRateLimit(1000)}, opts...)
	return NewClient(baseURL, opts...)
}

func loggedIn(fb *testutil.FakeBackend) (context.Context, models.User) {
	user := fb.AddUser(testutil.TestUser(), "segredo")
	s := &session.Session{ID: "s1", User: user.Profile(), Token: user.Token}
	return session.WithSession(context.Background(), s), user
}

func TestLogin(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	registered := fb.AddUser(testutil.TestUser(), "segredo")
	c := newTestClient(fb.URL)

	user, err := c.Login(context.Background(), registered.Email, "segredo")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, registered.Token, user.Token)
	assert.Empty(t, fb.LastRequest().Authorization, "login must not carry a bearer token")

	_, err = c.Login(context.Background(), registered.Email, "errada")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "E-mail ou senha incorretos", apiErr.Message)
}

func TestValidationHappensBeforeRequest(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)
	ctx, _ := loggedIn(fb)

	_, err := c.Login(context.Background(), "not-an-email", "x")
	require.Equal(t, "INVALID_INPUT", testutil.ErrorCode(err))

	bad := testutil.TestExpense("-10", models.NewDate(2024, 1, 1), nil)
	_, err = c.Expenses().Create(ctx, bad)
	require.Equal(t, "INVALID_INPUT", testutil.ErrorCode(err))

	_, err = c.Investments().Update(ctx, models.Investment{Name: "x", Months: 1, InvestmentType: models.InvestmentTypeCDI})
	require.Equal(t, "INVALID_INPUT", testutil.ErrorCode(err))

	assert.Empty(t, fb.Requests())
}

func TestBearerTokenFromSession(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)
	ctx, user := loggedIn(fb)
	fb.Seed("earnings", user.ID, testutil.TestEarning("1500", models.NewDate(2024, 3, 5)))

	earnings, err := c.Earnings().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, earnings, 1)
	assert.Equal(t, "1500", earnings[0].Value.String())
	assert.Equal(t, "Bearer "+user.Token, fb.LastRequest().Authorization)
	assert.Equal(t, "/earnings/user/"+user.ID.String(), fb.LastRequest().Path)
}

func TestNoSessionNoRequest(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)

	_, err := c.Categories().ListByUser(context.Background(), "1")
	require.Equal(t, "UNAUTHORIZED", testutil.ErrorCode(err))
	assert.Empty(t, fb.Requests())
}

func TestCRUDRoundTrip(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)
	ctx, user := loggedIn(fb)

	cat := testutil.TestCategory("Saúde")
	cat.UserID = user.ID
	created, err := c.Categories().Create(ctx, cat)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	exp := testutil.TestExpense("80.25", models.NewDate(2024, 4, 2), &created.ID)
	exp.UserID = user.ID
	exp.Category = &created
	savedExp, err := c.Expenses().Create(ctx, exp)
	require.NoError(t, err)
	_, sentCategory := fb.LastRequest().Body["category"]
	assert.False(t, sentCategory, "hydrated category must not be sent")
	require.NotNil(t, savedExp.CategoryID)
	assert.Equal(t, created.ID, *savedExp.CategoryID)
	assert.True(t, savedExp.CreationDate.Valid())

	savedExp.Status = models.ExpenseStatusPaid
	updated, err := c.Expenses().Update(ctx, savedExp)
	require.NoError(t, err)
	assert.Equal(t, models.ExpenseStatusPaid, updated.Status)
	assert.Equal(t, http.MethodPut, fb.LastRequest().Method)

	require.NoError(t, c.Expenses().Delete(ctx, savedExp.ID))
	assert.Equal(t, "/expenses/"+savedExp.ID.String(), fb.LastRequest().Path)
	assert.Equal(t, 0, fb.Count("expenses"))
}

func TestUnauthorizedRunsHook(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	var calls atomic.Int32
	var seen *session.Session
	c := newTestClient(fb.URL, WithUnauthorizedHook(func(ctx context.Context) {
		calls.Add(1)
		seen, _ = session.FromContext(ctx)
	}))

	s := &session.Session{ID: "stale", User: models.User{ID: "9"}, Token: "revoked"}
	ctx := session.WithSession(context.Background(), s)

	_, err := c.Objectives().ListByUser(ctx, "9")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())
	assert.Same(t, s, seen)

	// A failed login is a 401 too, but there is no session to tear down.
	_, err = c.Login(context.Background(), "ninguem@test.com", "x")
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestBackendRejection(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)

	_, err := c.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: "123456"})
	require.NoError(t, err)
	_, err = c.Register(context.Background(), RegisterRequest{Name: "Ana", Email: "ana@test.com", Password: "123456"})

	mapped := ToAppError(err)
	require.Equal(t, "BACKEND_REJECTED", testutil.ErrorCode(mapped))
	var appErr *apperrors.AppError
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.Equal(t, "E-mail já cadastrado", appErr.Message)
}

func TestBackendRejectionWithoutMessage(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	c := newTestClient(fb.URL)
	ctx, user := loggedIn(fb)
	fb.Fail("POST /objectives", http.StatusUnprocessableEntity, "")

	_, err := c.Objectives().Create(ctx, models.Objective{UserID: user.ID, Name: "Carro", Target: testutil.Money("1000")})
	var appErr *apperrors.AppError
	require.ErrorAs(t, ToAppError(err), &appErr)
	assert.Equal(t, "BACKEND_REJECTED", appErr.Code)
	assert.Equal(t, apperrors.ErrBackendRejected.Message, appErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(url, WithTimeout(time.Second))
	_, err := c.Login(context.Background(), "ana@test.com", "x")
	require.Equal(t, "BACKEND_UNAVAILABLE", testutil.ErrorCode(err))
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "sem id"}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := session.WithSession(context.Background(), &session.Session{User: models.User{ID: "1"}, Token: "t"})
	_, err := c.Categories().ListByUser(ctx, "1")
	require.Equal(t, "BACKEND_UNAVAILABLE", testutil.ErrorCode(err))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestToAppError(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
	require.Equal(t, "SESSION_EXPIRED", testutil.ErrorCode(ToAppError(&APIError{StatusCode: 401})))
	require.Equal(t, "BACKEND_UNAVAILABLE", testutil.ErrorCode(ToAppError(&APIError{StatusCode: 503})))
	require.Equal(t, "INVALID_INPUT", testutil.ErrorCode(ToAppError(apperrors.ErrInvalidInput)))
}
