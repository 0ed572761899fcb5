package service

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotAllowed   = errors.New("not allowed")
	ErrTooLarge     = errors.New("too large")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a domain failure surfaced to the caller as is
type Error struct {
	Kind error
	// Object names the entity for NotFound and NotAllowed
	Object string
	// Params names the offending parameter for InvalidInput
	Params string
	// AllowedTypes is set when an upload was rejected for its content type
	AllowedTypes []string
}

func (e *Error) Error() string {
	switch {
	case e.Object != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Object)
	case e.Params != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Params)
	case len(e.AllowedTypes) > 0:
		return fmt.Sprintf("%s: allowed types %s", e.Kind, strings.Join(e.AllowedTypes, ", "))
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound reports a missing entity
func NotFound(object string) *Error {
	return &Error{Kind: ErrNotFound, Object: object}
}

// NotAllowed reports an authorization denial on object
func NotAllowed(object string) *Error {
	return &Error{Kind: ErrNotAllowed, Object: object}
}

// WrongParameters reports a malformed or unsupported parameter
func WrongParameters(params string) *Error {
	return &Error{Kind: ErrInvalidInput, Params: params}
}

// IncorrectFileType reports an upload whose content type is not accepted
func IncorrectFileType(allowed []string) *Error {
	return &Error{Kind: ErrInvalidInput, AllowedTypes: allowed}
}

// TooLarge reports an upload above the size ceiling
func TooLarge() *Error {
	return &Error{Kind: ErrTooLarge}
}

// Unauthorized reports a missing, unknown or expired credential
func Unauthorized(reason string) *Error {
	return &Error{Kind: ErrUnauthorized, Params: reason}
}
