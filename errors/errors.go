// Package errors provides constant string errors that can carry a cause, alongside thin wrappers over
// the standard library errors package so callers only need a single import.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Separator is placed between an Error's message and the message of its cause.
const Separator = " -- "

// Error is a string based error type allowing packages to declare sentinel errors as constants.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is reports whether target is this Error, either directly or as the message prefix of a wrapped Error.
func (e Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(e) || strings.HasPrefix(msg, string(e)+Separator)
}

// Wrap returns an error with this Error as its identity and err as its cause.
func (e Error) Wrap(err error) error {
	return wrappedError{msg: string(e), cause: err}
}

// Wrapf is Wrap with a formatted cause.
func (e Error) Wrapf(format string, args ...any) error {
	return wrappedError{msg: string(e), cause: fmt.Errorf(format, args...)}
}

type wrappedError struct {
	msg   string
	cause error
}

func (w wrappedError) Error() string {
	if w.cause == nil {
		return w.msg
	}
	return w.msg + Separator + w.cause.Error()
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is errors.New.
func New(message string) error {
	return errors.New(message)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
