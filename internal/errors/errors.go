package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies an error; match it with errors.Is(err, code).
type Code string

func (c Code) Error() string { return string(c) }

// Error pairs a Code with the underlying cause (message + stack from pkg/errors).
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(Code)
	if !ok {
		return false
	}
	return e.Code == t
}

func New(code Code, message string) error {
	return &Error{
		Code: code,
		Err:  errors.New(message),
	}
}

func Newf(code Code, format string, args ...any) error {
	return &Error{
		Code: code,
		Err:  errors.Errorf(format, args...),
	}
}

// Wrap keeps err as the cause under code. A nil err stays nil.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrap(err, message),
	}
}

func Wrapf(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrapf(err, format, args...),
	}
}

// CodeOf returns the code of the outermost coded error in the chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code, true
	}
	var c Code
	if stderrors.As(err, &c) {
		return c, true
	}
	return "", false
}

// Message returns the cause text of a coded error without the code prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)
	return target, ok
}
