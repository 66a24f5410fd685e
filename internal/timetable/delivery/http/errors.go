package http

import (
	"errors"

	"studyflow/internal/timetable"
	"studyflow/pkg/response"
)

// mapError translates domain errors into HTTP errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, timetable.ErrEmptyName):
		return response.NewHTTPError(400, "class name is required")
	case errors.Is(err, timetable.ErrInvalidDay):
		return response.NewHTTPError(400, "day must be a lowercase english weekday")
	case errors.Is(err, timetable.ErrInvalidTime):
		return response.NewHTTPError(400, "times must be HH:MM with end after start")
	default:
		return response.NewHTTPError(500, response.DefaultErrorMessage)
	}
}
