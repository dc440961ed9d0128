package services

import (
	"context"

	"finboard/internal/logger"
	"finboard/internal/session"
)

// maintenanceService runs housekeeping jobs triggered by operators.
type maintenanceService struct {
	sessions   session.Storer
	workspaces WorkspaceServicer
}

// NewMaintenanceService creates a new MaintenanceServicer.
func NewMaintenanceService(sessions session.Storer, workspaces WorkspaceServicer) MaintenanceServicer {
	return &maintenanceService{sessions: sessions, workspaces: workspaces}
}

// PurgeSessions deletes expired sessions and drops the state held for them.
func (s *maintenanceService) PurgeSessions(ctx context.Context) (*PurgeResult, error) {
	n, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		return nil, err
	}
	dropped := s.workspaces.Prune(ctx)
	logger.Get().Infow("purged expired sessions", "sessions", n, "workspaces", dropped)
	return &PurgeResult{Sessions: n, Workspaces: dropped}, nil
}
