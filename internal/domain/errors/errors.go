package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error codes carried in AppError.Code
const (
	CodeInvalidInput       = "ERR_INVALID_INPUT"
	CodeUnauthorized       = "ERR_UNAUTHORIZED"
	CodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeConflict           = "ERR_CONFLICT"
	CodeInternalError      = "ERR_INTERNAL"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed, missing or semantically invalid input
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

// NotFound reports an absent entity. Ownership mismatches use it too.
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

// Conflict reports a uniqueness violation
func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

// InvalidCredentials reports a failed login without saying which field was wrong
func InvalidCredentials(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeInvalidCredentials, message, ErrInvalidCredentials)
}

// Unauthorized reports a missing or rejected bearer token
func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

// InternalError wraps a storage or unexpected failure behind a generic message
func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// From converts any error into an AppError.
// Bare sentinels map to their status; anything else is internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NotFound(ErrNotFound.Error())
	case errors.Is(err, ErrAlreadyExists):
		return Conflict(ErrAlreadyExists.Error())
	case errors.Is(err, ErrInvalidInput):
		return Validation(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return InvalidCredentials(ErrInvalidCredentials.Error())
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized(ErrUnauthorized.Error())
	default:
		return InternalError(err)
	}
}
