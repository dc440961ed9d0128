// Package errors provides custom error types for the finboard API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithStatus creates a new AppError carrying a status other than the sentinel's.
func WithStatus(sentinel *AppError, status int, message string, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: status,
		Internal:   internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrSessionExpired     = &AppError{Code: "SESSION_EXPIRED", Message: "Sua sessão expirou. Faça login novamente.", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "E-mail ou senha inválidos", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrInvalidRange   = &AppError{Code: "INVALID_RANGE", Message: "Período inválido", StatusCode: http.StatusBadRequest}
	ErrNoData         = &AppError{Code: "NO_DATA", Message: "Nenhum dado no período selecionado", StatusCode: http.StatusNotFound}
)

// Backend errors.
var (
	ErrBackendUnavailable = &AppError{Code: "BACKEND_UNAVAILABLE", Message: "Não foi possível conectar ao servidor. Tente novamente.", StatusCode: http.StatusBadGateway}
	ErrBackendRejected    = &AppError{Code: "BACKEND_REJECTED", Message: "Não foi possível concluir a operação. Tente novamente.", StatusCode: http.StatusBadGateway}
)

// Password reset errors.
var (
	ErrResetNotStarted  = &AppError{Code: "RESET_NOT_STARTED", Message: "Solicite um novo código de recuperação", StatusCode: http.StatusBadRequest}
	ErrResetNotVerified = &AppError{Code: "RESET_NOT_VERIFIED", Message: "Valide o código antes de alterar a senha", StatusCode: http.StatusBadRequest}
)

// Entity errors.
var (
	ErrCategoryNotFound   = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrEarningNotFound    = &AppError{Code: "EARNING_NOT_FOUND", Message: "Earning not found", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound    = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
	ErrObjectiveNotFound  = &AppError{Code: "OBJECTIVE_NOT_FOUND", Message: "Objective not found", StatusCode: http.StatusNotFound}
)
