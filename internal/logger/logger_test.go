package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := Replace(zap.New(core).Sugar())

	Get().Infow("session created", "user_id", "42")
	restore()

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "session created" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.ContextMap()["user_id"] != "42" {
		t.Errorf("user_id = %v", entry.ContextMap()["user_id"])
	}
	if Get() == nil {
		t.Error("restored logger should not be nil")
	}
}
