package http

import (
	"errors"

	"studyflow/internal/assistant"
	"studyflow/internal/conversation"
	"studyflow/pkg/response"
)

var errMissingConversationID = errors.New("conversation id is required")

// mapError translates use-case errors into HTTP errors. The chat
// surface almost never returns a hard failure; model outages reach here
// only through the lightweight no-intent path.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		return response.NewHTTPError(400, "message is empty")
	case errors.Is(err, conversation.ErrNotFound):
		return response.NewHTTPError(404, "conversation not found")
	case errors.Is(err, conversation.ErrArchived):
		return response.NewHTTPError(409, "conversation is archived")
	case errors.Is(err, assistant.ErrModelUnavailable):
		return response.NewHTTPError(503, "model unavailable, please retry")
	default:
		return response.NewHTTPError(500, response.DefaultErrorMessage)
	}
}
