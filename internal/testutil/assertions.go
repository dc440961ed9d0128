package testutil

import (
	"errors"
	"testing"

	apperrors "finboard/internal/errors"
)

// ErrorCode returns the code of the first *AppError in err's chain, or ""
// when there is none.
func ErrorCode(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// AssertAppError fails the test unless err carries an *AppError with the
// given code. Backend failures reach the handlers already mapped, so the code
// is what callers and the dashboard see.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	got := ErrorCode(err)
	if got == "" {
		t.Fatalf("expected error %s, got unmapped %T: %v", code, err, err)
	}
	if got != code {
		t.Errorf("expected error %s, got %s (%v)", code, got, err)
	}
}

// AssertNoError stops the test on any error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
