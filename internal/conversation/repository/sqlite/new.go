package sqlite

import (
	"studyflow/internal/storage"
	pkgLog "studyflow/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	tm *storage.TxManager
}

// New creates a SQLite-backed conversation repository.
func New(l pkgLog.Logger, tm *storage.TxManager) *implRepository {
	return &implRepository{l: l, tm: tm}
}
