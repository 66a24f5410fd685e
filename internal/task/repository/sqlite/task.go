package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyflow/internal/model"
	"studyflow/internal/task/repository"
)

const taskColumns = `id, user_id, title, description, priority, status,
	estimated_minutes, deadline, scheduled_time, created_at, updated_at`

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	now := time.Now().UTC()
	t := model.Task{
		ID:               uuid.NewString(),
		UserID:           opt.UserID,
		Title:            opt.Title,
		Description:      opt.Description,
		Priority:         opt.Priority,
		Status:           model.TaskPending,
		EstimatedMinutes: opt.EstimatedMinutes,
		Deadline:         opt.Deadline,
		ScheduledTime:    opt.ScheduledTime,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := r.tm.QuerierFrom(ctx).ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, t.Priority, t.Status,
		t.EstimatedMinutes, nullTime(t.Deadline), t.ScheduledTime, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (r *implRepository) CreateSubtasks(ctx context.Context, taskID string, opts []repository.CreateSubtaskOptions) ([]model.Subtask, error) {
	q := r.tm.QuerierFrom(ctx)
	subtasks := make([]model.Subtask, 0, len(opts))
	for i, opt := range opts {
		st := model.Subtask{
			ID:               uuid.NewString(),
			TaskID:           taskID,
			Title:            opt.Title,
			EstimatedMinutes: opt.EstimatedMinutes,
			Position:         i,
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, title, estimated_minutes, position, done)
			VALUES (?, ?, ?, ?, ?, 0)`,
			st.ID, st.TaskID, st.Title, st.EstimatedMinutes, st.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("insert subtask %d: %w", i, err)
		}
		subtasks = append(subtasks, st)
	}
	return subtasks, nil
}

func (r *implRepository) FindOrCreateTag(ctx context.Context, userID, name string) (model.Tag, error) {
	q := r.tm.QuerierFrom(ctx)

	var tag model.Tag
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, name FROM tags WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&tag.ID, &tag.UserID, &tag.Name)
	if err == nil {
		return tag, nil
	}
	if err != sql.ErrNoRows {
		return model.Tag{}, fmt.Errorf("select tag: %w", err)
	}

	tag = model.Tag{ID: uuid.NewString(), UserID: userID, Name: name}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO tags (id, user_id, name) VALUES (?, ?, ?)`,
		tag.ID, tag.UserID, tag.Name,
	); err != nil {
		return model.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return tag, nil
}

func (r *implRepository) AttachTag(ctx context.Context, taskID, tagID string) error {
	_, err := r.tm.QuerierFrom(ctx).ExecContext(ctx,
		`INSERT OR IGNORE INTO task_tags (task_id, tag_id) VALUES (?, ?)`,
		taskID, tagID,
	)
	if err != nil {
		return fmt.Errorf("attach tag: %w", err)
	}
	return nil
}

func (r *implRepository) GetTask(ctx context.Context, userID, id string) (model.Task, error) {
	row := r.tm.QuerierFrom(ctx).QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return model.Task{}, err
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	if err := r.loadDetails(ctx, &t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []interface{}{opt.UserID}
	)
	for _, status := range opt.ExcludeStatuses {
		where = append(where, "status != ?")
		args = append(args, status)
	}

	order := "created_at DESC"
	if opt.OrderOpen {
		// Nearest deadline first among equal priorities, NULL last.
		order = "priority DESC, deadline IS NULL, deadline ASC"
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY ` + order
	if opt.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opt.Limit)
	}

	rows, err := r.tm.QuerierFrom(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	for i := range tasks {
		if err := r.loadDetails(ctx, &tasks[i]); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (r *implRepository) UpdateStatus(ctx context.Context, userID, id string, status model.TaskStatus) error {
	res, err := r.tm.QuerierFrom(ctx).ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		status, time.Now().UTC(), userID, id,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *implRepository) loadDetails(ctx context.Context, t *model.Task) error {
	q := r.tm.QuerierFrom(ctx)

	rows, err := q.QueryContext(ctx, `
		SELECT id, task_id, title, estimated_minutes, position, done
		FROM subtasks WHERE task_id = ? ORDER BY position`, t.ID)
	if err != nil {
		return fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st model.Subtask
		if err := rows.Scan(&st.ID, &st.TaskID, &st.Title, &st.EstimatedMinutes, &st.Position, &st.Done); err != nil {
			return fmt.Errorf("scan subtask: %w", err)
		}
		t.Subtasks = append(t.Subtasks, st)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate subtasks: %w", err)
	}

	tagRows, err := q.QueryContext(ctx, `
		SELECT tg.id, tg.user_id, tg.name
		FROM tags tg JOIN task_tags tt ON tt.tag_id = tg.id
		WHERE tt.task_id = ? ORDER BY tg.name`, t.ID)
	if err != nil {
		return fmt.Errorf("list task tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tag model.Tag
		if err := tagRows.Scan(&tag.ID, &tag.UserID, &tag.Name); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		t.Tags = append(t.Tags, tag)
	}
	return tagRows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t        model.Task
		deadline sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Status,
		&t.EstimatedMinutes, &deadline, &t.ScheduledTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}
	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	return t, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
