package task

import (
	"context"

	"studyflow/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// CreateWithDetails persists a task, its ordered subtasks and its
	// tags (find-or-create per user) in one call.
	CreateWithDetails(ctx context.Context, sc model.Scope, input CreateInput) (model.Task, error)

	// ListOpen returns tasks not completed or cancelled, ordered by
	// priority descending then nearest deadline, capped at input.Limit.
	ListOpen(ctx context.Context, sc model.Scope, input ListOpenInput) ([]model.Task, error)

	// List returns all of the user's tasks, newest first.
	List(ctx context.Context, sc model.Scope) ([]model.Task, error)

	// UpdateStatus moves a task to a new lifecycle state.
	UpdateStatus(ctx context.Context, sc model.Scope, input UpdateStatusInput) (model.Task, error)
}
