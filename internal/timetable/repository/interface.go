package repository

import (
	"context"

	"studyflow/internal/model"
)

// Repository is the interface for timetable data access operations.
type Repository interface {
	CreateClass(ctx context.Context, opt CreateClassOptions) (model.TimetableClass, error)
	ListClasses(ctx context.Context, userID string) ([]model.TimetableClass, error)
}

// CreateClassOptions holds the parameters for inserting a class row.
type CreateClassOptions struct {
	UserID     string
	Name       string
	Day        string
	Period     int
	StartTime  string
	EndTime    string
	Room       string
	Instructor string
	Color      string
	Icon       string
}
