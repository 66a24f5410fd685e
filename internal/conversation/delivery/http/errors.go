package http

import (
	"errors"

	"studyflow/internal/conversation"
	"studyflow/pkg/response"
)

// mapError translates domain errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, conversation.ErrNotFound):
		return response.NewHTTPError(404, "conversation not found")
	default:
		return response.NewHTTPError(500, response.DefaultErrorMessage)
	}
}
