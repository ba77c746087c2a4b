package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// unavailable marks a failure to reach a backing store.
// It is the only fatal class of error for score computations: the whole call is aborted.
type unavailable struct {
	err error
}

func NewUnavailableError(err error) error {
	if err == nil {
		return nil
	}
	return &unavailable{err: err}
}

func (u unavailable) Error() string {
	return "store unavailable: " + u.err.Error()
}

// Unwrap exposes the underlying driver error to the standard library errors package.
func (u unavailable) Unwrap() error {
	return u.err
}

func IsUnavailable(err error) bool {
	_, ok := errors.Cause(err).(*unavailable)
	return ok
}
