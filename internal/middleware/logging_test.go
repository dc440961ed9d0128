package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finboard/internal/logger"
)

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Replace(zap.New(core).Sugar())
	defer restore()

	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/missing", func(c *gin.Context) {
		c.Set(UserIDKey, "7")
		c.Status(http.StatusNotFound)
	})

	t.Run("generates_request_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", http.NoBody))

		if _, err := uuid.Parse(rec.Header().Get(requestIDHeader)); err != nil {
			t.Errorf("expected a uuid request id, got %q", rec.Header().Get(requestIDHeader))
		}
	})

	t.Run("keeps_well_formed_request_id", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
		req.Header.Set(requestIDHeader, id)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got != id {
			t.Errorf("request id = %q, want %q", got, id)
		}
	})

	t.Run("replaces_malformed_request_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
		req.Header.Set(requestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get(requestIDHeader); got == "<script>" {
			t.Error("expected malformed request id to be replaced")
		}
	})

	t.Run("client_errors_log_at_warn_with_user", func(t *testing.T) {
		_ = logs.TakeAll()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

		entries := logs.TakeAll()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		if entries[0].Level != zapcore.WarnLevel {
			t.Errorf("level = %s, want warn", entries[0].Level)
		}
		if entries[0].ContextMap()["user_id"] != "7" {
			t.Errorf("expected user_id field, got %v", entries[0].ContextMap())
		}
	})
}
