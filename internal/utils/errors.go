package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the structured error services hand back to controllers.
// Controllers should not inspect error strings; they call HandleAppError.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewNotFoundError(format string, args ...any) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf(format, args...),
	}
}

func NewForbiddenError(format string, args ...any) *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Code:       ErrCodeForbidden,
		Message:    fmt.Sprintf(format, args...),
	}
}

func NewValidationError(format string, args ...any) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeValidation,
		Message:    fmt.Sprintf(format, args...),
	}
}

func NewInternalError(msg string, err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeInternal,
		Message:    msg,
		Err:        err,
	}
}

// IsAppError reports whether err is (or wraps) an *AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
