// Package errors provides the transport-facing application error type.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"fibernet/pkg/domain"
)

// AppError is a structured application error with HTTP status and error code.
type AppError struct {
	// Code is a machine-readable error code (e.g., "BOX_NOT_FOUND").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// HTTPStatus is the corresponding HTTP status code.
	HTTPStatus int `json:"-"`

	// Violations carries blocking rule results for integrity failures.
	Violations []domain.Violation `json:"violations,omitempty"`

	// Err is the wrapped underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// NotFound creates a 404 error.
func NotFound(code, message string) *AppError {
	return New(code, message, http.StatusNotFound)
}

// BadRequest creates a 400 error.
func BadRequest(code, message string) *AppError {
	return New(code, message, http.StatusBadRequest)
}

// Conflict creates a 409 error.
func Conflict(code, message string) *AppError {
	return New(code, message, http.StatusConflict)
}

// Internal creates a 500 error.
func Internal(code, message string) *AppError {
	return New(code, message, http.StatusInternalServerError)
}

// IsAppError checks if an error is an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromDomain maps store and service errors onto transport errors. Errors that
// are already AppErrors pass through unchanged.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := IsAppError(err); ok {
		return appErr
	}
	var nf domain.ErrNotFound
	if errors.As(err, &nf) {
		return Wrap(err, NotFoundCode(nf.Entity), nf.Error(), http.StatusNotFound)
	}
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		return Wrap(err, CodeInvalidRequestField, ve.Error(), http.StatusBadRequest)
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return Wrap(err, CodeConflict, err.Error(), http.StatusConflict)
	}
	var rv domain.RuleViolationError
	if errors.As(err, &rv) {
		appErr := Wrap(err, CodeIntegrityViolation, rv.Error(), http.StatusConflict)
		appErr.Violations = rv.Result.Violations
		return appErr
	}
	return Wrap(err, CodeInternal, "internal error", http.StatusInternalServerError)
}
