package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes shared by every query surface.
const (
	CodeNotFound         = "not_found"
	CodeInvalidArgument  = "invalid_argument"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal"
)

// Error is an error with an HTTP-equivalent status and a machine code.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func InvalidArgument(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, fmt.Errorf(format, args...))
}

// StoreUnavailable wraps an entity-store failure. The cause is kept in the
// chain for logging; callers see a 503.
func StoreUnavailable(op string, err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}

// Status returns the HTTP status for err, defaulting to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Code returns the machine code for err, defaulting to "internal".
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return CodeInternal
}
