package usecase

import (
	"studyflow/internal/knowledge/repository"
	pkgLog "studyflow/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

// New creates a new knowledge UseCase instance.
func New(l pkgLog.Logger, repo repository.Repository) *implUseCase {
	return &implUseCase{l: l, repo: repo}
}
