package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures so callers can react without string
// matching on messages.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindPrecondition  ErrorKind = "precondition"
	KindAuthorization ErrorKind = "authorization"
	KindStorage       ErrorKind = "storage"
	KindConflict      ErrorKind = "conflict"
	KindNotFound      ErrorKind = "notfound"
)

// Error is the error type returned by every engine operation.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a validation error. No state is mutated before one is returned.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Preconditionf builds a precondition error naming the unmet precondition.
func Preconditionf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

// Authorizationf builds an authorization error, surfaced before any side effect.
func Authorizationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// StorageErr wraps a blob-store failure that survived retries.
func StorageErr(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// Conflictf builds a concurrency conflict error (two writers raced).
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the classification of err, or "" if err is not an engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusCode maps an engine error to its HTTP status. Unclassified errors are 500.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindAuthorization:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindPrecondition:
		return 412
	case KindStorage:
		return 502
	default:
		return 500
	}
}
