// Package apperrors defines the error taxonomy shared by every service and the
// transport boundary.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the transport boundary.
type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	KindAuthorization  Kind = "AUTHORIZATION_ERROR"
	KindNotFound       Kind = "NOT_FOUND"
	KindDuplicateKey   Kind = "DUPLICATE_KEY_ERROR"
	KindInternal       Kind = "INTERNAL_SERVER_ERROR"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type.
type Error struct {
	Kind    Kind
	Message string // safe to show to callers
	Field   string // offending field for duplicate-key errors
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Kind == KindInternal {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is checks by kind.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrAuthorization  = &Error{Kind: KindAuthorization}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrDuplicateKey   = &Error{Kind: KindDuplicateKey}
	ErrInternal       = &Error{Kind: KindInternal}
)

// Validation builds a 400 error with message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Authentication builds a 401 error with message.
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization builds a 403 error with message.
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// NotFound builds "<resource> not found".
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// DuplicateKey builds "<field> already exists".
func DuplicateKey(field string) *Error {
	return &Error{Kind: KindDuplicateKey, Message: field + " already exists", Field: field}
}

// Internal wraps an infrastructure failure.
func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Response is the uniform error body returned by the transport.
type Response struct {
	Error  ResponseError `json:"error"`
	Status int           `json:"status"`
}

type ResponseError struct {
	Message string `json:"message"`
}

// ToResponse converts any error into the uniform response shape. Causes of
// internal errors are never exposed.
func ToResponse(err error) Response {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return Response{Error: ResponseError{Message: appErr.Message}, Status: appErr.Kind.Status()}
	}
	return Response{
		Error:  ResponseError{Message: "Internal server error"},
		Status: http.StatusInternalServerError,
	}
}
