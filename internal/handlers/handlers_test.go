package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/session"
	"finboard/internal/validator"
)

// --- mock services ---

type mockResourceService[T any] struct {
	listFn   func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	getFn    func(ctx context.Context, id models.ID) (*T, error)
	createFn func(ctx context.Context, item T) (*T, error)
	updateFn func(ctx context.Context, id models.ID, item T) (*T, error)
	deleteFn func(ctx context.Context, id models.ID) error
}

func (m *mockResourceService[T]) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	if m.listFn != nil {
		return m.listFn(ctx, page)
	}
	resp := pagination.NewPageResponse([]T{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockResourceService[T]) Get(ctx context.Context, id models.ID) (*T, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return new(T), nil
}

func (m *mockResourceService[T]) Create(ctx context.Context, item T) (*T, error) {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return &item, nil
}

func (m *mockResourceService[T]) Update(ctx context.Context, id models.ID, item T) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, item)
	}
	return &item, nil
}

func (m *mockResourceService[T]) Delete(ctx context.Context, id models.ID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var (
	_ services.CategoryServicer   = (*mockResourceService[models.Category])(nil)
	_ services.EarningServicer    = (*mockResourceService[models.Earning])(nil)
	_ services.ExpenseServicer    = (*mockResourceService[models.Expense])(nil)
	_ services.InvestmentServicer = (*mockResourceService[models.Investment])(nil)
	_ services.ObjectiveServicer  = (*mockResourceService[models.Objective])(nil)
)

type activityEntry struct {
	userID, action, resourceType, resourceID string
	changes                                  map[string]any
}

type mockActivityService struct {
	mu      sync.Mutex
	entries []activityEntry
	listFn  func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
}

func (m *mockActivityService) Log(userID, action, resourceType, resourceID, _ string, changes map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, activityEntry{userID, action, resourceType, resourceID, changes})
}

func (m *mockActivityService) List(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.ActivityLog{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockActivityService) logged() []activityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]activityEntry(nil), m.entries...)
}

var _ services.ActivityServicer = (*mockActivityService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func testSession() *session.Session {
	now := time.Now()
	return &session.Session{
		ID:        "sess-1",
		User:      models.User{ID: "7", Name: "Ana", Email: "ana@example.com", Token: "backend-token"},
		Token:     "backend-token",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

// injectSession stands in for the auth middleware.
func injectSession(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), sess))
		c.Set(middleware.SessionKey, sess)
		c.Set(middleware.UserIDKey, sess.UserID().String())
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
