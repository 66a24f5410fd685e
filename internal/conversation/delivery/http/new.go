package http

import (
	"studyflow/internal/conversation"
	"studyflow/pkg/log"
)

type handler struct {
	l  log.Logger
	uc conversation.UseCase
}

// New creates a new HTTP handler for the conversation domain.
func New(l log.Logger, uc conversation.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
