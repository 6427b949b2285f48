// Package apperror defines the error taxonomy shared by services and the
// HTTP error middleware.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindInvalidInput Kind = "invalid_input"
	KindConflict     Kind = "conflict"
	// KindPolicyViolation is reserved. Rate-cap overage is deliberately
	// corrected (clamped), not rejected, so nothing raises it today.
	KindPolicyViolation Kind = "policy_violation"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(what string) *Error {
	return Newf(KindNotFound, "%s not found", what)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// KindOf extracts the taxonomy kind from any error in the chain,
// defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
