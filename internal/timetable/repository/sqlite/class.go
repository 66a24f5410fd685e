package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyflow/internal/model"
	"studyflow/internal/storage"
	"studyflow/internal/timetable/repository"
	pkgLog "studyflow/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	tm *storage.TxManager
}

// New creates a SQLite-backed timetable repository.
func New(l pkgLog.Logger, tm *storage.TxManager) *implRepository {
	return &implRepository{l: l, tm: tm}
}

func (r *implRepository) CreateClass(ctx context.Context, opt repository.CreateClassOptions) (model.TimetableClass, error) {
	now := time.Now().UTC()
	c := model.TimetableClass{
		ID:         uuid.NewString(),
		UserID:     opt.UserID,
		Name:       opt.Name,
		Day:        opt.Day,
		Period:     opt.Period,
		StartTime:  opt.StartTime,
		EndTime:    opt.EndTime,
		Room:       opt.Room,
		Instructor: opt.Instructor,
		Color:      opt.Color,
		Icon:       opt.Icon,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := r.tm.QuerierFrom(ctx).ExecContext(ctx, `
		INSERT INTO timetable_classes
			(id, user_id, name, day, period, start_time, end_time, room, instructor, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.Day, c.Period, c.StartTime, c.EndTime,
		c.Room, c.Instructor, c.Color, c.Icon, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return model.TimetableClass{}, fmt.Errorf("insert timetable class: %w", err)
	}
	return c, nil
}

func (r *implRepository) ListClasses(ctx context.Context, userID string) ([]model.TimetableClass, error) {
	rows, err := r.tm.QuerierFrom(ctx).QueryContext(ctx, `
		SELECT id, user_id, name, day, period, start_time, end_time, room, instructor, color, icon, created_at, updated_at
		FROM timetable_classes
		WHERE user_id = ?
		ORDER BY day, period, start_time`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list timetable classes: %w", err)
	}
	defer rows.Close()

	var classes []model.TimetableClass
	for rows.Next() {
		var c model.TimetableClass
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Day, &c.Period, &c.StartTime, &c.EndTime,
			&c.Room, &c.Instructor, &c.Color, &c.Icon, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan timetable class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
