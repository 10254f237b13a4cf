// Package domainerrors defines coded domain errors shared across services and
// the HTTP layer. Services wrap sentinel facts or validation failures into a
// coded error; httputil translates the code into a status and JSON envelope.
package domainerrors

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeBadRequest        Code = "bad_request"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeInvalidTransition Code = "invalid_transition"
	CodeUnavailable       Code = "collaborator_unavailable"
	CodeInternal          Code = "internal_error"
)

// Error carries a machine-readable code plus a human-readable message. The
// message is safe to surface to callers except for CodeInternal, which the
// HTTP layer suppresses.
type Error struct {
	Code    Code
	Message string
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is reports code-and-message equality so coded errors compare by value.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && e.Code == other.Code && e.Message == other.Message
}

// CodeOf extracts the domain code from an error chain, defaulting to
// CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the message from a coded error, empty for uncoded errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidTransition:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
