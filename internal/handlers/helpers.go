package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"finboard/internal/aggregation"
	apperrors "finboard/internal/errors"
	"finboard/internal/gateway"
	"finboard/internal/logger"
	"finboard/internal/middleware"
	"finboard/internal/models"
	"finboard/internal/pagination"
	"finboard/internal/session"
	"finboard/internal/validator"
)

const maxIDLength = 64

// getSession extracts the authenticated session from the Gin context.
// Returns ErrUnauthorized if not present.
func getSession(c *gin.Context) (*session.Session, error) {
	v, exists := c.Get(middleware.SessionKey)
	if !exists {
		return nil, apperrors.ErrUnauthorized
	}
	sess, ok := v.(*session.Session)
	if !ok || !sess.Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}
	return sess, nil
}

// getUserID extracts the authenticated user ID from the Gin context.
func getUserID(c *gin.Context) (string, error) {
	sess, err := getSession(c)
	if err != nil {
		return "", err
	}
	return sess.UserID().String(), nil
}

// parsePathID reads a backend identifier from a path parameter.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (models.ID, error) {
	raw := strings.TrimSpace(c.Param(param))
	if raw == "" || len(raw) > maxIDLength || strings.ContainsAny(raw, "/?#") {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return models.ID(raw), nil
}

// bindJSON decodes the request body into obj, answering 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return false
	}
	return true
}

// bindPage reads page and page_size from the query string.
func bindPage(c *gin.Context) (pagination.PageRequest, bool) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err)))
		return page, false
	}
	page.Defaults()
	return page, true
}

// parseRange reads the from and to query parameters. Both default to the
// bounds of the current month.
func parseRange(c *gin.Context, now time.Time) (aggregation.Range, error) {
	loc := models.Location()
	now = now.In(loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, -1)

	if raw := c.Query("from"); raw != "" {
		d, ok := models.ParseDate(raw)
		if !ok {
			return aggregation.Range{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from date")
		}
		from = d.Time
	}
	if raw := c.Query("to"); raw != "" {
		d, ok := models.ParseDate(raw)
		if !ok {
			return aggregation.Range{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to date")
		}
		to = d.Time
	}
	return aggregation.NewRange(from, to, loc), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message; backend client
// errors are mapped first. Otherwise it logs the unexpected error and returns
// a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		err = gateway.ToAppError(err)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
