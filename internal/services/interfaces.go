package services

import (
	"context"

	"finboard/internal/aggregation"
	"finboard/internal/gateway"
	"finboard/internal/models"
	"finboard/internal/notify"
	"finboard/internal/pagination"
	"finboard/internal/session"
	"finboard/internal/state"
)

// AuthBackend is the part of the backend client that handles accounts.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	LoginGoogle(ctx context.Context, credential string) (models.User, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (models.User, error)
	RecoverToken(ctx context.Context, email string) error
	ValidateOTP(ctx context.Context, email, otp string) error
	ChangePassword(ctx context.Context, req gateway.ChangePasswordRequest) error
	GetUser(ctx context.Context, id models.ID) (models.User, error)
}

// AuthServicer defines the contract for login, logout and password recovery.
type AuthServicer interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	LoginGoogle(ctx context.Context, credential string) (*session.Session, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*models.User, error)
	Recover(ctx context.Context, email string) error
	ValidateOTP(ctx context.Context, email, otp string) error
	ChangePassword(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
}

// WorkspaceServicer hands out the in-memory state of the session in ctx.
type WorkspaceServicer interface {
	Workspace(ctx context.Context) (*state.Store, error)
	Sync(ctx context.Context) (state.Statuses, error)
	Statuses(ctx context.Context) (state.Statuses, error)
	Expire(ctx context.Context)
	Drop(sessionID string)
	Prune(ctx context.Context) int
}

// ResourceServicer defines list and mutation operations on one of the
// user's collections.
type ResourceServicer[T any] interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	Get(ctx context.Context, id models.ID) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id models.ID, item T) (*T, error)
	Delete(ctx context.Context, id models.ID) error
}

// Per-collection servicers.
type (
	CategoryServicer   = ResourceServicer[models.Category]
	EarningServicer    = ResourceServicer[models.Earning]
	ExpenseServicer    = ResourceServicer[models.Expense]
	InvestmentServicer = ResourceServicer[models.Investment]
	ObjectiveServicer  = ResourceServicer[models.Objective]
)

// DashboardServicer defines the derived views of the dashboard page.
type DashboardServicer interface {
	Summary(ctx context.Context, r aggregation.Range) (*aggregation.Summary, error)
	ExpensesByCategory(ctx context.Context, r aggregation.Range) ([]aggregation.CategoryTotal, error)
	ExpensesByDay(ctx context.Context, r aggregation.Range) ([]aggregation.DayTotal, error)
	DailyChart(ctx context.Context, r aggregation.Range) ([]byte, error)
	CategoryChart(ctx context.Context, r aggregation.Range) ([]byte, error)
	InvestmentReturn(ctx context.Context, id models.ID) (*aggregation.NetReturn, error)
	InvestmentReturns(ctx context.Context) ([]aggregation.NetReturn, error)
	ObjectiveProgress(ctx context.Context, id models.ID) (*aggregation.Progress, error)
}

// NotificationServicer hands out pending notifications. *notify.Inbox
// satisfies it.
type NotificationServicer interface {
	Drain(userID string) []notify.Notification
}

// ActivityServicer defines the contract for the activity log.
type ActivityServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
	List(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
}

// MaintenanceServicer defines housekeeping operations.
type MaintenanceServicer interface {
	PurgeSessions(ctx context.Context) (*PurgeResult, error)
}

// PurgeResult reports what a purge removed.
type PurgeResult struct {
	Sessions   int64 `json:"sessions"`
	Workspaces int   `json:"workspaces"`
}
