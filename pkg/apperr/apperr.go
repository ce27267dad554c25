// Package apperr defines the typed failures the services return and their
// mapping to HTTP status codes. Controllers never invent status codes; they
// ask this package.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal is an unexpected persistence or runtime failure.
	Internal Kind = iota
	// InvalidInput is a malformed or missing required field.
	InvalidInput
	// Unauthenticated is a missing or invalid credential.
	Unauthenticated
	// Forbidden is a valid credential with insufficient privilege.
	Forbidden
	// NotFound is an id that does not resolve.
	NotFound
	// EmptyCart is an order submitted with no items.
	EmptyCart
)

// Error is a typed failure with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that records an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err; unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps err to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case InvalidInput, EmptyCart:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to send to a client. Internal
// failures always collapse to a generic message.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal Server Error"
}
