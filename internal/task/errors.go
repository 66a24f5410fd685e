package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyTitle      = errors.New("task title is empty")
	ErrInvalidPriority = errors.New("task priority must be 2, 3 or 5")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrNotFound        = errors.New("task not found")
)
