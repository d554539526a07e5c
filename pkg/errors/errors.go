/*
Package errors provides error annotations shared by the storage engine and
the metrics facade built on top of it.

Errors can be marked as recoverable, i.e. an operation failing with such an
error may succeed if retried later (a table not yet opened, an engine that is
shutting down). Errors can also be classified to tell the failing subsystem
apart in logs.
*/
package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root cause of all errors reporting a missing entity.
var ErrNotFound = errors.New("not found")

// WrapError is an error with a message that wraps a cause.
type WrapError interface {
	IsNotFound() bool
	Error() string
	Unwrap() error
}

type wrapError struct {
	msg string
	err error
}

// Errorf returns new error with message defined by format and args
// If error is not nil, err.Error() is attached to the message
func Errorf(err error, format string, args ...interface{}) WrapError {
	message := fmt.Sprintf(format, args...)
	if err != nil {
		message = fmt.Sprintf("%s: %s", message, err.Error())
	}
	return &wrapError{
		msg: message,
		err: err,
	}
}

// IsNotFound returns true if error wraps ErrNotFound
func (e *wrapError) IsNotFound() bool {
	return IsNotFound(e.err)
}

// Error returns the error message
func (e *wrapError) Error() string {
	return e.msg
}

// Unwrap returns the cause
func (e *wrapError) Unwrap() error {
	return e.err
}

// NotFound returns a new error for a missing entity of the given kind.
// The result wraps ErrNotFound.
func NotFound(kind string) error {
	return fmt.Errorf("%s %w", kind, ErrNotFound)
}

// IsNotFound returns true if err has ErrNotFound in its chain.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
