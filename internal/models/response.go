package models

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessEnvelope is the uniform top-level wrapper for successful responses.
type SuccessEnvelope struct {
	Timestamp string `json:"timestamp"`
	Success   bool   `json:"success"`
	Status    int    `json:"status"`
	Data      any    `json:"data"`
	Message   string `json:"message"`
}

// ErrorEnvelope is the uniform top-level wrapper for failed responses.
type ErrorEnvelope struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	Success   bool   `json:"success"`
}

// Respond writes a success envelope with the given status, data and message.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(SuccessEnvelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Success:   true,
		Status:    status,
		Data:      data,
		Message:   message,
	})
}

// ErrorHandler is the terminal error handler installed in fiber.Config.
// Every error raised anywhere upstream converges here and is written as
// exactly one error envelope. Unclassified errors fall through to the
// 500 defaults.
func ErrorHandler(c *fiber.Ctx, err error) error {
	envelope := ErrorEnvelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    fiber.StatusInternalServerError,
		Error:     "Internal Server Error",
		Message:   "Something went wrong",
		Path:      c.Path(),
		Success:   false,
	}

	var apiErr *APIError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		envelope.Status = apiErr.Kind.Status
		envelope.Error = apiErr.Kind.Name
		envelope.Message = apiErr.Message
	case errors.As(err, &fiberErr):
		// Router-level errors (unknown route, wrong method) are mapped onto
		// the taxonomy so they share the envelope shape.
		if kind, ok := KindForStatus(fiberErr.Code); ok {
			envelope.Status = kind.Status
			envelope.Error = kind.Name
		} else {
			envelope.Status = fiberErr.Code
			envelope.Error = http.StatusText(fiberErr.Code)
		}
		envelope.Message = fiberErr.Message
	}

	return c.Status(envelope.Status).JSON(envelope)
}
