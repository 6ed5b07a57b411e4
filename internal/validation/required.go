// Package validation provides request payload validation helpers.
package validation

import (
	"strings"

	"vibematch/internal/models"
)

// Requirement names a payload field together with the human-readable label
// used in error messages.
type Requirement struct {
	Field string
	Label string
}

// RequireFields checks payload for every requirement in order and fails with
// a BadRequest error naming the first field that is absent or empty.
func RequireFields(payload map[string]string, requirements ...Requirement) error {
	for _, req := range requirements {
		if strings.TrimSpace(payload[req.Field]) == "" {
			return models.NewBadRequestError(req.Label + " is required")
		}
	}
	return nil
}
