package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"finboard/internal/gateway"
	"finboard/internal/models"
	"finboard/internal/notify"
	"finboard/internal/session"
	"finboard/internal/testutil"
)

const testPassword = "segredo"

// env wires the services against a fake backend and an in-memory database.
type env struct {
	fb         *testutil.FakeBackend
	db         *gorm.DB
	sessions   *session.Store
	inbox      *notify.Inbox
	workspaces WorkspaceServicer
	auth       AuthServicer
	user       models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	fb := testutil.NewFakeBackend(t)
	user := fb.AddUser(testutil.TestUser(), testPassword)

	client := gateway.NewClient(fb.URL, gateway.WithLogger(zap.NewNop().Sugar()), gateway.WithRateLimit(1000))
	sessions := session.NewStore(db, "test-session-key", time.Hour)
	inbox := notify.NewInbox(0)
	workspaces := NewWorkspaceService(sessions, client, inbox)
	client.OnUnauthorized(workspaces.Expire)

	return &env{
		fb:         fb,
		db:         db,
		sessions:   sessions,
		inbox:      inbox,
		workspaces: workspaces,
		auth:       NewAuthService(client, sessions, session.NewResetStore(time.Minute), workspaces, inbox),
		user:       user,
	}
}

// login opens a session for the env user and returns a context carrying it.
func (e *env) login(t *testing.T) context.Context {
	t.Helper()
	sess, err := e.auth.Login(context.Background(), e.user.Email, testPassword)
	testutil.AssertNoError(t, err)
	return session.WithSession(context.Background(), sess)
}

func (e *env) drain() []notify.Notification {
	return e.inbox.Drain(e.user.ID.String())
}

func testNotification(userID string) notify.Notification {
	return notify.New(userID, notify.LevelInfo, "teste")
}
