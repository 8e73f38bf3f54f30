// Package apperror defines the error taxonomy shared by all controllers, so
// callers can branch on the failure class instead of string-matching messages.
package apperror

import (
	"fmt"
	"net/http"
)

// ErrorType classifies an application error.
type ErrorType int

const (
	// Unknown is the catch-all for failures with no structural payload.
	Unknown ErrorType = iota
	// Validation carries one or more field-level messages, surfaced verbatim.
	Validation
	// NotFound means a referenced entity is absent.
	NotFound
	// NotPermitted means the actor is not the entity's owner.
	NotPermitted
	// Transient means an aborted transaction or connectivity failure; the
	// caller may retry the request unchanged.
	Transient
)

type AppError struct {
	Type    ErrorType
	Message string
	Fields  map[string]string // set for Validation errors
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to the HTTP status the API layer returns.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case NotPermitted:
		return http.StatusForbidden
	case Transient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(fields map[string]string) *AppError {
	return &AppError{Type: Validation, Message: "validation failed", Fields: fields}
}

func NewNotFound(message string) *AppError {
	return &AppError{Type: NotFound, Message: message}
}

func NewNotPermitted(message string) *AppError {
	return &AppError{Type: NotPermitted, Message: message}
}

func NewTransient(message string, err error) *AppError {
	return &AppError{Type: Transient, Message: message, Err: err}
}

func NewUnknown(message string, err error) *AppError {
	return &AppError{Type: Unknown, Message: message, Err: err}
}
