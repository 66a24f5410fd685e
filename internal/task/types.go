package task

import "time"

// SubtaskInput is one ordered child step supplied at creation time.
type SubtaskInput struct {
	Title            string
	EstimatedMinutes int
}

// CreateInput is the input for creating a task together with its
// subtasks and tags in one operation.
type CreateInput struct {
	Title            string
	Description      string
	Priority         int // model.PriorityLow/Medium/High
	EstimatedMinutes int
	Deadline         *time.Time
	ScheduledTime    string // "HH:MM:SS", optional
	Tags             []string
	Subtasks         []SubtaskInput
}

// ListOpenInput bounds the open-task listing used for model context.
type ListOpenInput struct {
	Limit int
}

// UpdateStatusInput moves a task to a new lifecycle state.
type UpdateStatusInput struct {
	ID     string
	Status string
}
