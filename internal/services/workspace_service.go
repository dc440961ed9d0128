package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/logger"
	"finboard/internal/notify"
	"finboard/internal/session"
	"finboard/internal/state"
)

// expiredMemory is how long a torn-down session is remembered so that the
// parallel requests failing with it only notify once.
const expiredMemory = time.Minute

// workspaceRegistry keeps one state.Store per live session.
type workspaceRegistry struct {
	sessions session.Storer
	backend  state.Backend
	notifier notify.Notifier

	mu      sync.Mutex
	stores  map[string]*state.Store
	expired map[string]time.Time
	group   singleflight.Group
	now     func() time.Time
}

// NewWorkspaceService creates a new WorkspaceServicer. Its Expire method is
// meant to be installed as the backend client's unauthorized hook.
func NewWorkspaceService(sessions session.Storer, backend state.Backend, notifier notify.Notifier) WorkspaceServicer {
	if notifier == nil {
		notifier = notify.Fanout{}
	}
	return &workspaceRegistry{
		sessions: sessions,
		backend:  backend,
		notifier: notifier,
		stores:   make(map[string]*state.Store),
		expired:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Workspace returns the store of the session in ctx, loading it on first use.
// A load that fails for any reason other than a rejected token still yields
// the store, with the failing collections in the Error state. The load is
// shared by every waiting caller, so it does not stop when the first one is
// cancelled.
func (r *workspaceRegistry) Workspace(ctx context.Context) (*state.Store, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	if st := r.lookup(sess.ID); st != nil {
		return st, nil
	}

	v, err, _ := r.group.Do(sess.ID, func() (any, error) {
		if st := r.lookup(sess.ID); st != nil {
			return st, nil
		}
		st := state.NewStore(sess.UserID(), r.backend, r.notifier)
		if err := st.FetchAll(context.WithoutCancel(ctx)); err != nil && gateway.IsUnauthorized(err) {
			return nil, err
		}
		r.mu.Lock()
		r.stores[sess.ID] = st
		r.mu.Unlock()
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*state.Store), nil
}

// Sync refetches every collection of the session in ctx.
func (r *workspaceRegistry) Sync(ctx context.Context) (state.Statuses, error) {
	st, err := r.Workspace(ctx)
	if err != nil {
		return state.Statuses{}, err
	}
	if err := st.FetchAll(ctx); err != nil {
		return st.Statuses(), err
	}
	return st.Statuses(), nil
}

// Statuses returns the load state of the session in ctx.
func (r *workspaceRegistry) Statuses(ctx context.Context) (state.Statuses, error) {
	st, err := r.Workspace(ctx)
	if err != nil {
		return state.Statuses{}, err
	}
	return st.Statuses(), nil
}

// Expire tears down the session in ctx after the backend rejected its token:
// the session is deleted, its state dropped and the user notified once.
func (r *workspaceRegistry) Expire(ctx context.Context) {
	sess, ok := session.FromContext(ctx)
	if !ok || !r.markExpired(sess.ID) {
		return
	}
	bg := context.WithoutCancel(ctx)
	if err := r.sessions.Delete(bg, sess.ID); err != nil {
		logger.Get().Errorw("failed to delete expired session", "session_id", sess.ID, "error", err)
	}
	r.Drop(sess.ID)
	r.notifier.Notify(bg, notify.New(sess.UserID().String(), notify.LevelError, apperrors.ErrSessionExpired.Message))
	logger.Get().Infow("session expired by backend", "session_id", sess.ID, "user_id", sess.UserID())
}

// Drop forgets the state of a session.
func (r *workspaceRegistry) Drop(sessionID string) {
	r.mu.Lock()
	st := r.stores[sessionID]
	delete(r.stores, sessionID)
	r.mu.Unlock()
	if st != nil {
		st.Reset()
	}
}

// Prune drops the state of every session that no longer exists and returns
// how many were dropped.
func (r *workspaceRegistry) Prune(ctx context.Context) int {
	r.mu.Lock()
	ids := make([]string, 0, len(r.stores))
	for id := range r.stores {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	dropped := 0
	for _, id := range ids {
		_, err := r.sessions.Get(ctx, id)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrSessionExpired.Code {
			r.Drop(id)
			dropped++
		}
	}
	return dropped
}

func (r *workspaceRegistry) lookup(sessionID string) *state.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stores[sessionID]
}

// markExpired reports whether sessionID was not already being torn down.
func (r *workspaceRegistry) markExpired(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, at := range r.expired {
		if now.Sub(at) > expiredMemory {
			delete(r.expired, id)
		}
	}
	if _, seen := r.expired[sessionID]; seen {
		return false
	}
	r.expired[sessionID] = now
	return true
}
