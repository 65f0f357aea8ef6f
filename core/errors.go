package core

import (
	"fmt"
	"net/http"
)

// ErrorKind enumerates the failure classes the API exposes to callers.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

// DomainError is the single error type crossing the service boundary.
// Kind decides the HTTP status; Code carries the store discriminator when
// the failure originated there.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Status maps the error kind to its HTTP status code.
func (e *DomainError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) *DomainError {
	if message == "" {
		message = "Unauthorized"
	}
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

func NewNotFoundError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}
