// Package errors defines the ledger error taxonomy. Every failure surfaced
// by a service is one of the sentinel kinds below, each mapped to a stable
// HTTP status. Internal errors keep their cause for logging but never leak
// it to the client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Error kinds
const (
	KindNotFound  = "NotFound"
	KindForbidden = "Forbidden"
	KindInvalid   = "ValidationError"
	KindConflict  = "Conflict"
	KindInternal  = "Internal"
)

// Sentinels. Use Explain to attach a message; Explain copies, so the
// sentinels themselves are never mutated.
var (
	NotFound  = &Error{Kind: KindNotFound, Message: "not found"}
	Forbidden = &Error{Kind: KindForbidden, Message: "forbidden"}
	Invalid   = &Error{Kind: KindInvalid, Message: "invalid request"}
	Conflict  = &Error{Kind: KindConflict, Message: "conflict"}
	Internal  = &Error{Kind: KindInternal, Message: "internal server error"}
)

// Error carries an error kind alongside a human readable message.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`

	cause error
}

var _ error = (*Error)(nil)

// Error implements error.
func (e *Error) Error() string {
	str := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.cause != nil {
		str += fmt.Sprintf(" (%s)", e.cause)
	}
	return str
}

// Explain returns a copy of the error with the given message.
func (e *Error) Explain(message string, args ...any) *Error {
	err := *e
	err.Message = fmt.Sprintf(message, args...)
	return &err
}

// Wrap sets the error cause.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches errors of the same kind, so errors.Is(err, errors.NotFound)
// holds for any NotFound regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalid:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Public returns the message safe to return to a caller. Internal causes
// stay server-side.
func (e *Error) Public() string {
	if e.Kind == KindInternal {
		return "internal server error"
	}
	return e.Message
}
