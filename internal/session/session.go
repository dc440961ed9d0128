// Package session holds the explicit login state of a dashboard user: who
// they are and which backend token to present on their behalf.
package session

import (
	"context"
	"time"

	"finboard/internal/models"
)

// Session is one authenticated dashboard login.
type Session struct {
	ID        string
	User      models.User
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// UserID returns the backend id of the logged-in user.
func (s *Session) UserID() models.ID { return s.User.ID }

// Authenticated is true when both the user id and token are present.
func (s *Session) Authenticated() bool {
	return s != nil && s.User.ID != "" && s.Token != ""
}

type contextKey int

const sessionKey contextKey = iota

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}
