package utils

import (
	"errors"
	"fmt"
)

// ErrMissingUser signals that no authenticated owner could be resolved for
// the current request. This is a server-side invariant violation, not a
// client error: the auth middleware must have set the user before any
// owner-scoped operation runs.
var ErrMissingUser = errors.New("fields need an owner to be queried, created or updated")

// BadRequestError is a client error carrying a message that names the
// offending field or id. Handlers map it to a 400 response.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// NewBadRequest creates a BadRequestError from a format string
func NewBadRequest(format string, args ...interface{}) *BadRequestError {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// IsBadRequest reports whether err is a BadRequestError
func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}

// BadFieldValueError signals that a value failed its field's type contract.
// The reason is human-readable and is surfaced by the request validation
// layer as "fields.N.value <reason>".
type BadFieldValueError struct {
	Reason string
}

func (e *BadFieldValueError) Error() string {
	return e.Reason
}

// NewBadFieldValue creates a BadFieldValueError from a format string
func NewBadFieldValue(format string, args ...interface{}) *BadFieldValueError {
	return &BadFieldValueError{Reason: fmt.Sprintf(format, args...)}
}
