package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Priority scale. Natural-language levels low/medium/high map onto
// 2/3/5 so that sorting by priority spreads the levels apart.
const (
	PriorityLow    = 2
	PriorityMedium = 3
	PriorityHigh   = 5
)

// Task is a persisted to-do owned by a user.
type Task struct {
	ID               string
	UserID           string
	Title            string
	Description      string
	Priority         int
	Status           TaskStatus
	EstimatedMinutes int
	Deadline         *time.Time
	ScheduledTime    string // "HH:MM:SS", empty when unscheduled
	Subtasks         []Subtask
	Tags             []Tag
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Subtask is an ordered child step of a task.
type Subtask struct {
	ID               string
	TaskID           string
	Title            string
	EstimatedMinutes int
	Position         int
	Done             bool
}

// Tag is a per-user label attached to tasks, created on first use.
type Tag struct {
	ID     string
	UserID string
	Name   string
}
