package http

import (
	"studyflow/internal/knowledge"
	"studyflow/pkg/log"
)

type handler struct {
	l  log.Logger
	uc knowledge.UseCase
}

// New creates a new HTTP handler for the knowledge base.
func New(l log.Logger, uc knowledge.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
