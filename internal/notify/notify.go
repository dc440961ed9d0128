// Package notify delivers short-lived messages to dashboard users: the
// success and failure notices that follow their actions.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"finboard/internal/uuid"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one message for one user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds a notification stamped with an id and the current time.
func New(userID string, level Level, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}
}

// Notifier delivers notifications. Delivery is best effort; failures are
// logged by the implementation, never returned.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Fanout delivers to every notifier in order.
type Fanout []Notifier

// Notify implements Notifier.
func (f Fanout) Notify(ctx context.Context, n Notification) {
	for _, target := range f {
		if target != nil {
			target.Notify(ctx, n)
		}
	}
}

// DefaultInboxSize bounds how many undelivered notifications a user keeps.
const DefaultInboxSize = 50

// Inbox holds notifications until the user's client drains them.
type Inbox struct {
	mu     sync.Mutex
	max    int
	byUser map[string][]Notification
}

// NewInbox creates an inbox keeping at most max notifications per user.
func NewInbox(max int) *Inbox {
	if max <= 0 {
		max = DefaultInboxSize
	}
	return &Inbox{max: max, byUser: make(map[string][]Notification)}
}

// Notify implements Notifier. The oldest entries are dropped past the limit.
func (i *Inbox) Notify(_ context.Context, n Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	list := append(i.byUser[n.UserID], n)
	if len(list) > i.max {
		list = list[len(list)-i.max:]
	}
	i.byUser[n.UserID] = list
}

// Drain returns the user's pending notifications, oldest first, and clears them.
func (i *Inbox) Drain(userID string) []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	list := i.byUser[userID]
	delete(i.byUser, userID)
	if list == nil {
		return []Notification{}
	}
	return list
}

// Clear drops the user's pending notifications.
func (i *Inbox) Clear(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.byUser, userID)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(l *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: l}
}

// Notify implements Notifier.
func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	fields := []interface{}{"user_id", n.UserID, "notification_id", n.ID, "message", n.Message}
	if n.Level == LevelError {
		l.logger.Warnw("user notified of failure", fields...)
		return
	}
	l.logger.Debugw("user notified", fields...)
}
