// Package ecode defines the stable error codes of the API surface and the
// typed error carried from the point of detection to the response boundary.
package ecode

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes exposed in the error envelope.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND_ERROR"
	CodeDuplicate  = "DUPLICATE_ENTRY"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

const (
	duplicateMsg = "A record with this information already exists"
	internalMsg  = "An unexpected error occurred"
)

// Error is a typed API error. Field is only set for validation errors
// where the offending field is known.
type Error struct {
	Code    string
	Status  int
	Message string
	Field   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation creates a validation error, optionally naming the first
// offending field.
func Validation(message string, field ...string) *Error {
	e := &Error{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
	if len(field) > 0 {
		e.Field = field[0]
	}
	return e
}

// NotFound creates a not-found error for the named resource.
func NotFound(resource string, id ...string) *Error {
	message := fmt.Sprintf("%s not found", resource)
	if len(id) > 0 && id[0] != "" {
		message = fmt.Sprintf("%s with id %s not found", resource, id[0])
	}
	return &Error{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// Duplicate creates a duplicate-entry error surfaced from a unique
// constraint violation.
func Duplicate(message ...string) *Error {
	msg := duplicateMsg
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return &Error{
		Code:    CodeDuplicate,
		Status:  http.StatusConflict,
		Message: msg,
	}
}

// Internal creates a catch-all server error. Detail is never exposed to
// clients; pass nothing to use the generic message.
func Internal(message ...string) *Error {
	msg := internalMsg
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: msg,
	}
}

// From extracts the typed error from err, translating anything
// unrecognized into a generic internal error.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal()
}
