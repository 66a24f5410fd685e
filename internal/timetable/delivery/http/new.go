package http

import (
	"studyflow/internal/timetable"
	"studyflow/pkg/log"
)

type handler struct {
	l  log.Logger
	uc timetable.UseCase
}

// New creates a new HTTP handler for the timetable domain.
func New(l log.Logger, uc timetable.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
