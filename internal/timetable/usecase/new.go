package usecase

import (
	"studyflow/internal/timetable/repository"
	"studyflow/pkg/gcalendar"
	pkgLog "studyflow/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	calendar   *gcalendar.Client // nil when calendar sync is disabled
	calendarID string
	timezone   string
}

// New creates a new timetable UseCase instance. calendar may be nil.
func New(l pkgLog.Logger, repo repository.Repository, calendar *gcalendar.Client, calendarID, timezone string) *implUseCase {
	return &implUseCase{
		l:          l,
		repo:       repo,
		calendar:   calendar,
		calendarID: calendarID,
		timezone:   timezone,
	}
}
