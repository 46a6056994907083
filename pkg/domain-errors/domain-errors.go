// Package domainerrors carries transport-agnostic failures between the sponsor
// client, service and handler layers.
package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeValidation   Code = "validation_failed"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal_error"
	CodeTimeout      Code = "timeout"

	// CodeUpstreamUnavailable marks a failed call to the remote sponsor store:
	// network error, non-success status, or an unparseable body.
	CodeUpstreamUnavailable Code = "upstream_unavailable"
)

// Error wraps a failure with a stable code. Message is safe to show to
// callers; Err holds the diagnostic cause and is only ever logged.
type Error struct {
	Code    Code
	Message string
	// Field names the offending request field for validation failures.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code so callers can write errors.Is(err, &Error{Code: ...}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Invalid reports a request field that failed validation.
func Invalid(field, msg string) error {
	return &Error{Code: CodeValidation, Field: field, Message: msg}
}

// Upstream wraps a remote store failure. msg is the public message returned to
// the caller; cause stays internal.
func Upstream(msg string, cause error) error {
	return &Error{Code: CodeUpstreamUnavailable, Message: msg, Err: cause}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Field: existing.Field, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
