package repository

import (
	"context"

	"studyflow/internal/model"
)

// Repository is the interface for task data access operations.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	CreateSubtasks(ctx context.Context, taskID string, opts []CreateSubtaskOptions) ([]model.Subtask, error)
	FindOrCreateTag(ctx context.Context, userID, name string) (model.Tag, error)
	AttachTag(ctx context.Context, taskID, tagID string) error
	GetTask(ctx context.Context, userID, id string) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateStatus(ctx context.Context, userID, id string, status model.TaskStatus) error
}
