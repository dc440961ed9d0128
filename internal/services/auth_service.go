package services

import (
	"context"

	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/logger"
	"finboard/internal/models"
	"finboard/internal/session"
)

// authService handles login, logout and password recovery.
type authService struct {
	backend    AuthBackend
	sessions   session.Storer
	resets     *session.ResetStore
	workspaces WorkspaceServicer
	inbox      Clearer
}

// Clearer discards pending notifications of a user.
type Clearer interface {
	Clear(userID string)
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(backend AuthBackend, sessions session.Storer, resets *session.ResetStore, workspaces WorkspaceServicer, inbox Clearer) AuthServicer {
	return &authService{
		backend:    backend,
		sessions:   sessions,
		resets:     resets,
		workspaces: workspaces,
		inbox:      inbox,
	}
}

// Login authenticates with e-mail and password, opens a session and loads
// the user's records.
func (s *authService) Login(ctx context.Context, email, password string) (*session.Session, error) {
	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, loginError(err)
	}
	return s.open(ctx, user)
}

// LoginGoogle authenticates with a Google identity credential.
func (s *authService) LoginGoogle(ctx context.Context, credential string) (*session.Session, error) {
	user, err := s.backend.LoginGoogle(ctx, credential)
	if err != nil {
		return nil, loginError(err)
	}
	return s.open(ctx, user)
}

func (s *authService) open(ctx context.Context, user models.User) (*session.Session, error) {
	sess, err := s.sessions.Create(ctx, user, user.Token)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaces.Workspace(session.WithSession(ctx, sess)); err != nil {
		logger.Get().Warnw("initial load failed", "session_id", sess.ID, "user_id", sess.UserID(), "error", err)
		if gateway.IsUnauthorized(err) {
			return nil, gateway.ToAppError(err)
		}
	}
	logger.Get().Infow("user logged in", "session_id", sess.ID, "user_id", sess.UserID())
	return sess, nil
}

func loginError(err error) error {
	if gateway.IsUnauthorized(err) {
		return apperrors.Wrap(apperrors.ErrInvalidCredentials, err)
	}
	return gateway.ToAppError(err)
}

// Register creates a backend account. It does not log the user in.
func (s *authService) Register(ctx context.Context, req gateway.RegisterRequest) (*models.User, error) {
	user, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, gateway.ToAppError(err)
	}
	return &user, nil
}

// Recover asks the backend for a recovery code and starts a reset handoff.
func (s *authService) Recover(ctx context.Context, email string) error {
	if err := s.backend.RecoverToken(ctx, email); err != nil {
		return gateway.ToAppError(err)
	}
	s.resets.Start(email)
	return nil
}

// ValidateOTP checks the recovery code and marks the handoff as verified.
func (s *authService) ValidateOTP(ctx context.Context, email, otp string) error {
	if err := s.backend.ValidateOTP(ctx, email, otp); err != nil {
		return gateway.ToAppError(err)
	}
	return s.resets.Validate(email, otp)
}

// ChangePassword completes a verified handoff. The handoff is consumed even
// when the backend refuses the change.
func (s *authService) ChangePassword(ctx context.Context, email, password string) error {
	reset, err := s.resets.Complete(email)
	if err != nil {
		return err
	}
	req := gateway.ChangePasswordRequest{Email: email, OTP: reset.OTP, Password: password}
	if err := s.backend.ChangePassword(ctx, req); err != nil {
		return gateway.ToAppError(err)
	}
	return nil
}

// Logout deletes the session in ctx and forgets everything held for it.
func (s *authService) Logout(ctx context.Context) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return apperrors.ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return err
	}
	s.workspaces.Drop(sess.ID)
	if s.inbox != nil {
		s.inbox.Clear(sess.UserID().String())
	}
	logger.Get().Infow("user logged out", "session_id", sess.ID, "user_id", sess.UserID())
	return nil
}

// Profile fetches the current profile of the logged-in user.
func (s *authService) Profile(ctx context.Context) (*models.User, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.backend.GetUser(ctx, sess.UserID())
	if err != nil {
		return nil, gateway.ToAppError(err)
	}
	return &user, nil
}
