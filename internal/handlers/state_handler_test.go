package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
	"finboard/internal/notify"
	"finboard/internal/pagination"
	"finboard/internal/services"
	"finboard/internal/state"
)

type mockWorkspaceService struct {
	syncFn     func(ctx context.Context) (state.Statuses, error)
	statusesFn func(ctx context.Context) (state.Statuses, error)
}

func (m *mockWorkspaceService) Workspace(context.Context) (*state.Store, error) { return nil, nil }

func (m *mockWorkspaceService) Sync(ctx context.Context) (state.Statuses, error) {
	if m.syncFn != nil {
		return m.syncFn(ctx)
	}
	return loadedStatuses(), nil
}

func (m *mockWorkspaceService) Statuses(ctx context.Context) (state.Statuses, error) {
	if m.statusesFn != nil {
		return m.statusesFn(ctx)
	}
	return loadedStatuses(), nil
}

func (m *mockWorkspaceService) Expire(context.Context) {}

func (m *mockWorkspaceService) Drop(string) {}

func (m *mockWorkspaceService) Prune(context.Context) int { return 0 }

var _ services.WorkspaceServicer = (*mockWorkspaceService)(nil)

func loadedStatuses() state.Statuses {
	return state.Statuses{
		Categories:  state.Loaded,
		Earnings:    state.Loaded,
		Expenses:    state.Loaded,
		Investments: state.Loaded,
		Objectives:  state.Loaded,
	}
}

func TestStateHandler(t *testing.T) {
	newRouter := func(svc services.WorkspaceServicer) *gin.Engine {
		handler := NewStateHandler(svc)
		r := gin.New()
		auth := r.Group("", injectSession(testSession()))
		auth.POST("/sync", handler.Sync)
		auth.GET("/state", handler.GetState)
		return r
	}

	t.Run("sync reports loaded collections", func(t *testing.T) {
		rec := doRequest(newRouter(&mockWorkspaceService{}), "POST", "/sync", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["loaded"] != true {
			t.Errorf("expected loaded, got %v", result["loaded"])
		}
		statuses := result["statuses"].(map[string]interface{})
		if statuses["expenses"] != "loaded" {
			t.Errorf("expected expenses loaded, got %v", statuses["expenses"])
		}
	})

	t.Run("state shows partial failure", func(t *testing.T) {
		svc := &mockWorkspaceService{
			statusesFn: func(context.Context) (state.Statuses, error) {
				st := loadedStatuses()
				st.Investments = state.Error
				return st, nil
			},
		}

		rec := doRequest(newRouter(svc), "GET", "/state", "")

		result := parseJSON(t, rec)
		if result["loaded"] != false {
			t.Errorf("expected not loaded, got %v", result["loaded"])
		}
		if result["statuses"].(map[string]interface{})["investments"] != "error" {
			t.Errorf("expected investments error, got %v", result["statuses"])
		}
	})

	t.Run("sync with expired session", func(t *testing.T) {
		svc := &mockWorkspaceService{
			syncFn: func(context.Context) (state.Statuses, error) {
				return state.Statuses{}, apperrors.ErrSessionExpired
			},
		}

		rec := doRequest(newRouter(svc), "POST", "/sync", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SESSION_EXPIRED")
	})
}

func TestNotificationHandler(t *testing.T) {
	inbox := notify.NewInbox(10)
	inbox.Notify(context.Background(), notify.New("7", notify.LevelSuccess, "Despesa criada"))
	inbox.Notify(context.Background(), notify.New("8", notify.LevelSuccess, "Outro usuário"))

	handler := NewNotificationHandler(inbox)
	r := gin.New()
	r.GET("/notifications", injectSession(testSession()), handler.ListNotifications)

	rec := doRequest(r, "GET", "/notifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	pending := parseJSON(t, rec)["notifications"].([]interface{})
	if len(pending) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(pending))
	}
	if pending[0].(map[string]interface{})["message"] != "Despesa criada" {
		t.Errorf("unexpected notification %v", pending[0])
	}

	rec = doRequest(r, "GET", "/notifications", "")
	if pending := parseJSON(t, rec)["notifications"].([]interface{}); len(pending) != 0 {
		t.Errorf("expected the inbox to be drained, got %d", len(pending))
	}
}

func TestActivityHandler(t *testing.T) {
	var gotUser string
	activity := &mockActivityService{
		listFn: func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
			gotUser = userID
			resp := pagination.NewPageResponse([]models.ActivityLog{{Action: "create"}}, page.Page, page.PageSize, 1)
			return &resp, nil
		},
	}
	handler := NewActivityHandler(activity)
	r := gin.New()
	r.GET("/activity", injectSession(testSession()), handler.ListActivity)

	rec := doRequest(r, "GET", "/activity", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != "7" {
		t.Errorf("expected user 7, got %q", gotUser)
	}
	if data := parseJSON(t, rec)["data"].([]interface{}); len(data) != 1 {
		t.Errorf("expected 1 entry, got %d", len(data))
	}
}

type mockMaintenanceService struct {
	result *services.PurgeResult
	err    error
}

func (m *mockMaintenanceService) PurgeSessions(context.Context) (*services.PurgeResult, error) {
	return m.result, m.err
}

func TestMaintenanceHandler(t *testing.T) {
	handler := NewMaintenanceHandler(&mockMaintenanceService{result: &services.PurgeResult{Sessions: 3, Workspaces: 2}})
	r := gin.New()
	r.POST("/internal/sessions/purge", handler.PurgeSessions)

	rec := doRequest(r, "POST", "/internal/sessions/purge", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["sessions"] != float64(3) || result["workspaces"] != float64(2) {
		t.Errorf("unexpected result %v", result)
	}
}
