package timetable

import "errors"

// Domain-specific errors for the timetable package.
var (
	ErrEmptyName   = errors.New("class name is empty")
	ErrInvalidDay  = errors.New("day must be a lowercase english weekday")
	ErrInvalidTime = errors.New("time must be HH:MM with start before end")
)
