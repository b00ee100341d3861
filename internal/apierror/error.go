package apierror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Tags used to qualify rendered errors.
const (
	TagValidation  = "validation"
	TagInvalidAuth = "invalid-auth"
	TagForbidden   = "forbidden"
	TagNotOwner    = "not-owner"
	TagNotFound    = "not-found"
)

type (
	// An Error represents the error format that can be rendered by the server.
	Error struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	}
)

// StatusCode returns the HTTP status code.
// It looks through wrapped errors.
func StatusCode(e error) int {
	if apierr, ok := errors.Cause(e).(*Error); ok && apierr.HTTPCode != 0 {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given message.
func New(message string) *Error {
	return &Error{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new Error with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *Error {
	return &Error{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Validation returns an error for a malformed input on the given field path.
func Validation(field, message string) *Error {
	e := NewWithTagCode(http.StatusBadRequest, TagValidation, message)
	e.FieldError.Field = field
	return e
}

// InvalidAuth returns an error for a missing or invalid credential.
func InvalidAuth(message string) *Error {
	return NewWithTagCode(http.StatusUnauthorized, TagInvalidAuth, message)
}

// Forbidden returns an error for a read of a private memory owned by someone else.
func Forbidden() *Error {
	return NewWithTagCode(http.StatusForbidden, TagForbidden, "Forbidden")
}

// NotOwner returns an error for a write on a memory owned by someone else.
func NotOwner() *Error {
	return NewWithTagCode(http.StatusUnauthorized, TagNotOwner, "Only the owner can modify this memory.")
}

// NotFound returns an error for a missing record.
func NotFound(message string) *Error {
	return NewWithTagCode(http.StatusNotFound, TagNotFound, message)
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.FieldError.Message
}

// Tag returns the tag of the error.
func (e *Error) Tag() string {
	return e.FieldError.Tag
}

// Field returns the path of the offending field, if any.
func (e *Error) Field() string {
	return e.FieldError.Field
}
