// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind is a named category of failure bound to a fixed HTTP status code.
// The set of kinds is closed; every error raised by the application carries
// exactly one of them.
type Kind struct {
	Name   string
	Status int
}

var (
	KindNotFound            = Kind{Name: "NotFound", Status: fiber.StatusNotFound}
	KindBadRequest          = Kind{Name: "BadRequest", Status: fiber.StatusBadRequest}
	KindUnauthorized        = Kind{Name: "Unauthorized", Status: fiber.StatusUnauthorized}
	KindForbidden           = Kind{Name: "Forbidden", Status: fiber.StatusForbidden}
	KindInternalServer      = Kind{Name: "InternalServer", Status: fiber.StatusInternalServerError}
	KindMethodNotAllowed    = Kind{Name: "MethodNotAllowed", Status: fiber.StatusMethodNotAllowed}
	KindConflict            = Kind{Name: "Conflict", Status: fiber.StatusConflict}
	KindUnprocessableEntity = Kind{Name: "UnprocessableEntity", Status: fiber.StatusUnprocessableEntity}
)

// kinds holds every defined Kind for status lookups at the formatting boundary.
var kinds = []Kind{
	KindNotFound,
	KindBadRequest,
	KindUnauthorized,
	KindForbidden,
	KindInternalServer,
	KindMethodNotAllowed,
	KindConflict,
	KindUnprocessableEntity,
}

// KindForStatus returns the Kind bound to the given HTTP status code.
func KindForStatus(status int) (Kind, bool) {
	for _, k := range kinds {
		if k.Status == status {
			return k, true
		}
	}
	return Kind{}, false
}

// APIError is an application error tagged with a Kind. The Kind's name,
// the message and the Kind's status alone drive the terminal error envelope.
type APIError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns a NotFound (404) error with the given message.
func NewNotFoundError(message string) *APIError {
	return &APIError{Kind: KindNotFound, Message: message}
}

// NewBadRequestError returns a BadRequest (400) error with the given message.
func NewBadRequestError(message string) *APIError {
	return &APIError{Kind: KindBadRequest, Message: message}
}

// NewUnauthorizedError returns an Unauthorized (401) error with the given message.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError returns a Forbidden (403) error with the given message.
func NewForbiddenError(message string) *APIError {
	return &APIError{Kind: KindForbidden, Message: message}
}

// NewInternalError wraps an unexpected lower-layer failure as an
// InternalServer (500) error.
func NewInternalError(err error) *APIError {
	return &APIError{Kind: KindInternalServer, Message: "Internal server error", Err: err}
}

// NewMethodNotAllowedError returns a MethodNotAllowed (405) error with the given message.
func NewMethodNotAllowedError(message string) *APIError {
	return &APIError{Kind: KindMethodNotAllowed, Message: message}
}

// NewConflictError returns a Conflict (409) error with the given message.
func NewConflictError(message string) *APIError {
	return &APIError{Kind: KindConflict, Message: message}
}

// NewUnprocessableEntityError returns an UnprocessableEntity (422) error with the given message.
func NewUnprocessableEntityError(message string) *APIError {
	return &APIError{Kind: KindUnprocessableEntity, Message: message}
}
