package http

import (
	"errors"

	"studyflow/internal/task"
	"studyflow/pkg/response"
)

// mapError translates domain errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrEmptyTitle):
		return response.NewHTTPError(400, "task title is required")
	case errors.Is(err, task.ErrInvalidPriority):
		return response.NewHTTPError(400, "priority must be 2, 3 or 5")
	case errors.Is(err, task.ErrInvalidStatus):
		return response.NewHTTPError(400, "invalid task status")
	case errors.Is(err, task.ErrNotFound):
		return response.NewHTTPError(404, "task not found")
	default:
		return response.NewHTTPError(500, response.DefaultErrorMessage)
	}
}
