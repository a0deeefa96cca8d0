// Package apperr defines sentinel application errors that remain matchable
// with errors.Is after formatting or wrapping.
package apperr

import "fmt"

// Error is a sentinel error with a human-readable message. Fmt and Wrap
// return copies that keep the identity of the original sentinel so that
// errors.Is(err, sentinel) holds for the derived error.
type Error struct {
	Message string
	Cause   error

	base *Error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Fmt treats the message as a format string and returns a copy with the
// arguments applied.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
		base:    e.root(),
	}
}

// Wrap returns a copy carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Cause:   err,
		base:    e.root(),
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
