package http

import (
	"time"

	"studyflow/internal/model"
	"studyflow/internal/task"
)

// --- Request DTOs ---

type subtaskReq struct {
	Title            string `json:"title"             binding:"required,min=1,max=255"`
	EstimatedMinutes int    `json:"estimated_minutes" binding:"omitempty,min=0"`
}

type createReq struct {
	Title            string       `json:"title"             binding:"required,min=1,max=255"`
	Description      string       `json:"description"       binding:"max=2000"`
	Priority         int          `json:"priority"          binding:"omitempty,oneof=2 3 5"`
	EstimatedMinutes int          `json:"estimated_minutes" binding:"omitempty,min=0"`
	Deadline         string       `json:"deadline"          binding:"omitempty,datetime=2006-01-02"`
	ScheduledTime    string       `json:"scheduled_time"    binding:"omitempty,datetime=15:04:05"`
	Tags             []string     `json:"tags"`
	Subtasks         []subtaskReq `json:"subtasks"`
}

func (r createReq) validate() error { return nil }

func (r createReq) toInput() task.CreateInput {
	var deadline *time.Time
	if r.Deadline != "" {
		if d, err := time.Parse("2006-01-02", r.Deadline); err == nil {
			deadline = &d
		}
	}
	subtasks := make([]task.SubtaskInput, 0, len(r.Subtasks))
	for _, st := range r.Subtasks {
		subtasks = append(subtasks, task.SubtaskInput{
			Title:            st.Title,
			EstimatedMinutes: st.EstimatedMinutes,
		})
	}
	return task.CreateInput{
		Title:            r.Title,
		Description:      r.Description,
		Priority:         r.Priority,
		EstimatedMinutes: r.EstimatedMinutes,
		Deadline:         deadline,
		ScheduledTime:    r.ScheduledTime,
		Tags:             r.Tags,
		Subtasks:         subtasks,
	}
}

type updateStatusReq struct {
	ID     string `json:"-"`      // populated from URI param
	Status string `json:"status"  binding:"required,oneof=pending in_progress completed cancelled"`
}

func (r updateStatusReq) validate() error { return nil }

func (r updateStatusReq) toInput() task.UpdateStatusInput {
	return task.UpdateStatusInput{
		ID:     r.ID,
		Status: r.Status,
	}
}

// --- Response DTOs ---

type subtaskResp struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes,omitempty"`
	Position         int    `json:"position"`
	Done             bool   `json:"done"`
}

type taskResp struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Priority         int           `json:"priority"`
	Status           string        `json:"status"`
	EstimatedMinutes int           `json:"estimated_minutes,omitempty"`
	Deadline         *time.Time    `json:"deadline,omitempty"`
	ScheduledTime    string        `json:"scheduled_time,omitempty"`
	Subtasks         []subtaskResp `json:"subtasks,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func newTaskResp(t model.Task) taskResp {
	subtasks := make([]subtaskResp, 0, len(t.Subtasks))
	for _, st := range t.Subtasks {
		subtasks = append(subtasks, subtaskResp{
			ID:               st.ID,
			Title:            st.Title,
			EstimatedMinutes: st.EstimatedMinutes,
			Position:         st.Position,
			Done:             st.Done,
		})
	}
	tags := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tag.Name)
	}
	return taskResp{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Priority:         t.Priority,
		Status:           string(t.Status),
		EstimatedMinutes: t.EstimatedMinutes,
		Deadline:         t.Deadline,
		ScheduledTime:    t.ScheduledTime,
		Subtasks:         subtasks,
		Tags:             tags,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
}

func (h *handler) newListResp(tasks []model.Task) listResp {
	out := make([]taskResp, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResp(t)
	}
	return listResp{Tasks: out}
}
