package sqlite

import (
	pkgLog "studyflow/pkg/log"

	"studyflow/internal/storage"
)

type implRepository struct {
	l  pkgLog.Logger
	tm *storage.TxManager
}

// New creates a SQLite-backed task repository. Queries run against the
// request transaction when one is carried in the context.
func New(l pkgLog.Logger, tm *storage.TxManager) *implRepository {
	return &implRepository{l: l, tm: tm}
}
