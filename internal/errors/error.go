package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Category represents the type of error.
type Category string

const (
	CategoryRouting   Category = "routing"
	CategoryRuntime   Category = "runtime"
	CategoryProtocol  Category = "protocol"
	CategoryTransport Category = "transport"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// Error is a structured error carrying a registered code.
type Error struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (routing, runtime, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Status is the HTTP status the error maps to. Zero means 500.
	Status int

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// ErrRouteNotFound is returned by route resolution for unknown paths.
var ErrRouteNotFound = New(CodeRouteNotFound)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Status:   template.Status,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// HTTPStatus maps an error to a transport status. A nil error is 200, an
// error whose chain holds a coded Error with a status uses that status, and
// everything else is 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *Error
	if stderrors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	if stderrors.Is(err, ErrRouteNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
