// Package apperror defines the typed errors returned to API clients and the
// terminal stage that turns any error into a JSON response.
package apperror

import (
	"errors"
	"net/http"
)

// Messages shared by more than one layer.
const (
	MsgServerError    = "Server error"
	MsgNotFound       = "Not found"
	MsgAuthRequired   = "Authentication required"
	MsgValidation     = "Validation failed"
	MsgInvalidJSON    = "Invalid JSON body"
	MsgBadCredentials = "Invalid email or password"
)

// Error is a failure with a status code and a message that is safe to show
// to the client.
type Error struct {
	// Status is the HTTP status code sent to the client.
	Status int
	// Message is the client-visible message.
	Message string
	// Details carries structured data, such as validation failures.
	Details any

	cause error
}

// Error returns the client-visible message, followed by the cause when set.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap returns a copy of e recording cause for the error log.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// InvalidInput is a malformed request body, parameter or identifier.
func InvalidInput(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthenticated is a missing or invalid credential.
func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden is an authenticated caller acting on something it does not own.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound is a well-formed reference to a missing resource or route.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict is a uniqueness violation.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Response is the JSON body of every failed request.
type Response struct {
	Message    string `json:"message"`
	Validation any    `json:"validation,omitempty"`
}

// Normalize maps err to the status and body sent to the client. Errors that
// are not *Error, or that carry a 5xx status, collapse into a generic 500 so
// internal detail never reaches the client.
func Normalize(err error) (int, Response) {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Status == 0 || appErr.Status >= http.StatusInternalServerError {
		return http.StatusInternalServerError, Response{Message: MsgServerError}
	}
	return appErr.Status, Response{Message: appErr.Message, Validation: appErr.Details}
}
