package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"studyflow/internal/model"
	"studyflow/internal/task"
	"studyflow/internal/task/repository"
)

const defaultOpenLimit = 10

func (uc *implUseCase) CreateWithDetails(ctx context.Context, sc model.Scope, input task.CreateInput) (model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, task.ErrEmptyTitle
	}

	priority := input.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		return model.Task{}, task.ErrInvalidPriority
	}

	created, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:           sc.UserID,
		Title:            title,
		Description:      input.Description,
		Priority:         priority,
		EstimatedMinutes: input.EstimatedMinutes,
		Deadline:         input.Deadline,
		ScheduledTime:    input.ScheduledTime,
	})
	if err != nil {
		uc.l.Errorf(ctx, "task.usecase.CreateWithDetails.CreateTask: %v", err)
		return model.Task{}, err
	}

	if len(input.Subtasks) > 0 {
		opts := make([]repository.CreateSubtaskOptions, 0, len(input.Subtasks))
		for _, st := range input.Subtasks {
			if strings.TrimSpace(st.Title) == "" {
				continue
			}
			opts = append(opts, repository.CreateSubtaskOptions{
				Title:            strings.TrimSpace(st.Title),
				EstimatedMinutes: st.EstimatedMinutes,
			})
		}
		subtasks, err := uc.repo.CreateSubtasks(ctx, created.ID, opts)
		if err != nil {
			uc.l.Errorf(ctx, "task.usecase.CreateWithDetails.CreateSubtasks: %v", err)
			return model.Task{}, err
		}
		created.Subtasks = subtasks
	}

	for _, name := range input.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := uc.repo.FindOrCreateTag(ctx, sc.UserID, name)
		if err != nil {
			uc.l.Errorf(ctx, "task.usecase.CreateWithDetails.FindOrCreateTag: %v", err)
			return model.Task{}, err
		}
		if err := uc.repo.AttachTag(ctx, created.ID, tag.ID); err != nil {
			uc.l.Errorf(ctx, "task.usecase.CreateWithDetails.AttachTag: %v", err)
			return model.Task{}, err
		}
		created.Tags = append(created.Tags, tag)
	}

	return created, nil
}

func (uc *implUseCase) ListOpen(ctx context.Context, sc model.Scope, input task.ListOpenInput) ([]model.Task, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultOpenLimit
	}
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		UserID:          sc.UserID,
		ExcludeStatuses: []string{string(model.TaskCompleted), string(model.TaskCancelled)},
		OrderOpen:       true,
		Limit:           limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "task.usecase.ListOpen.ListTasks: %v", err)
		return nil, err
	}
	return tasks, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "task.usecase.List.ListTasks: %v", err)
		return nil, err
	}
	return tasks, nil
}

func (uc *implUseCase) UpdateStatus(ctx context.Context, sc model.Scope, input task.UpdateStatusInput) (model.Task, error) {
	status := model.TaskStatus(input.Status)
	switch status {
	case model.TaskPending, model.TaskInProgress, model.TaskCompleted, model.TaskCancelled:
	default:
		return model.Task{}, task.ErrInvalidStatus
	}

	if err := uc.repo.UpdateStatus(ctx, sc.UserID, input.ID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, task.ErrNotFound
		}
		uc.l.Errorf(ctx, "task.usecase.UpdateStatus: %v", err)
		return model.Task{}, err
	}

	updated, err := uc.repo.GetTask(ctx, sc.UserID, input.ID)
	if err != nil {
		uc.l.Errorf(ctx, "task.usecase.UpdateStatus.GetTask: %v", err)
		return model.Task{}, err
	}
	return updated, nil
}
