package usecase

import (
	"studyflow/internal/conversation/repository"
	pkgLog "studyflow/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

// New creates a new conversation UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository) *implUseCase {
	return &implUseCase{l: l, repo: repo}
}
