package repository

import "time"

// CreateTaskOptions holds the parameters for inserting a task row.
type CreateTaskOptions struct {
	UserID           string
	Title            string
	Description      string
	Priority         int
	EstimatedMinutes int
	Deadline         *time.Time
	ScheduledTime    string
}

// CreateSubtaskOptions holds the parameters for one subtask row.
// Position is assigned by the repository in slice order.
type CreateSubtaskOptions struct {
	Title            string
	EstimatedMinutes int
}

// ListTasksOptions holds the parameters for listing tasks.
type ListTasksOptions struct {
	UserID          string
	ExcludeStatuses []string // statuses to filter out (e.g. completed, cancelled)
	OrderOpen       bool     // priority desc, deadline asc; otherwise newest first
	Limit           int
}
