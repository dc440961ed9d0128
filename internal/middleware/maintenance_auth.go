package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
)

// Maintenance endpoint errors.
var (
	ErrMaintenanceNotConfigured = &apperrors.AppError{Code: "MAINTENANCE_NOT_CONFIGURED", Message: "Maintenance endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey            = &apperrors.AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// MaintenanceAuthMiddleware creates a Gin middleware that validates the
// X-API-Key header against the configured maintenance key. Without a key the
// endpoints are disabled.
func MaintenanceAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			writeError(c, ErrMaintenanceNotConfigured)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			writeError(c, ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
