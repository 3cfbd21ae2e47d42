package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// apiError writes a JSON error body with a single message.
func apiError(e *core.RequestEvent, statusCode int, message string) error {
	return e.JSON(statusCode, map[string]any{"error": message})
}

// validationError writes field-level errors the way the edit forms expect
// them: a map of field name to message. ozzo's validation.Errors marshals
// to exactly that shape.
func validationError(e *core.RequestEvent, errs error) error {
	return e.JSON(http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": errs,
	})
}
