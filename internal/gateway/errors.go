package gateway

import (
	"errors"
	"net/http"

	apperrors "finboard/internal/errors"
)

// ToAppError maps any gateway error onto the dashboard's error codes.
// Backend rejections keep the backend's status and message, falling back to
// a generic message when the backend sent none.
func ToAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return apperrors.Wrap(apperrors.ErrBackendUnavailable, err)
	}

	switch {
	case apiErr.Unauthorized():
		return apperrors.Wrap(apperrors.ErrSessionExpired, apiErr)
	case apiErr.StatusCode >= http.StatusInternalServerError:
		return apperrors.Wrap(apperrors.ErrBackendUnavailable, apiErr)
	}

	msg := apiErr.Message
	if msg == "" {
		msg = apperrors.ErrBackendRejected.Message
	}
	return apperrors.WithStatus(apperrors.ErrBackendRejected, apiErr.StatusCode, msg, apiErr)
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}
