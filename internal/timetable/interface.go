package timetable

import (
	"context"

	"studyflow/internal/model"
)

// UseCase defines the business logic interface for the timetable domain.
type UseCase interface {
	// Confirm persists a class the user accepted from a chat suggestion
	// (or entered directly). The chat pipeline itself never writes here.
	Confirm(ctx context.Context, sc model.Scope, input ConfirmInput) (model.TimetableClass, error)

	// Week returns the entire weekly timetable grouped by day name.
	Week(ctx context.Context, sc model.Scope) (WeekOutput, error)
}
