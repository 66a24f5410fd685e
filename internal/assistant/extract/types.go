package extract

import (
	"time"

	"studyflow/internal/model"
)

// SubtaskSpec is one ordered subtask found in a task intent.
type SubtaskSpec struct {
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes,omitempty"`
}

// TaskIntent is a structured task-creation request derived from one
// message. A detected TaskIntent is always persisted in the same
// request; it is never held back for confirmation.
type TaskIntent struct {
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	EstimatedMinutes int           `json:"estimated_minutes,omitempty"`
	Priority         int           `json:"priority"` // 2, 3 or 5
	Deadline         time.Time     `json:"deadline"`
	ScheduledTime    string        `json:"scheduled_time,omitempty"` // "HH:MM:SS"
	Tags             []string      `json:"tags,omitempty"`
	Subtasks         []SubtaskSpec `json:"subtasks,omitempty"`
}

// TimetableIntent is a class suggestion derived from one message. It is
// never auto-persisted; the caller confirms through a separate endpoint.
type TimetableIntent struct {
	Name       string `json:"name"`
	Day        string `json:"day"` // lowercase english weekday
	Period     int    `json:"period,omitempty"`
	StartTime  string `json:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time"`   // "HH:MM"
	Room       string `json:"room,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

// KnowledgeQueryIntent drives a read-only knowledge search.
type KnowledgeQueryIntent struct {
	ItemType       string   `json:"item_type"` // note, code, exercise, resource or any
	Keywords       []string `json:"keywords"`
	LearningPathID string   `json:"learning_path_id,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
}

// KnowledgeCategorySpec names a category to create.
type KnowledgeCategorySpec struct {
	Name string `json:"name"`
}

// KnowledgeItemSpec describes one knowledge item to create, targeting
// its category by name-or-create.
type KnowledgeItemSpec struct {
	Type         string   `json:"type"` // note, code, exercise, resource
	Title        string   `json:"title"`
	Content      string   `json:"content,omitempty"`
	Question     string   `json:"question,omitempty"`
	Answer       string   `json:"answer,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// KnowledgeCreationIntent bundles categories and items to create.
type KnowledgeCreationIntent struct {
	Categories []KnowledgeCategorySpec `json:"categories,omitempty"`
	Items      []KnowledgeItemSpec     `json:"items,omitempty"`
}

// Intents collects the outcome of one extraction pass. All four are
// mutually independent; any subset may be non-nil.
type Intents struct {
	Task            *TaskIntent
	Timetable       *TimetableIntent
	KnowledgeQuery  *KnowledgeQueryIntent
	KnowledgeCreate *KnowledgeCreationIntent
}

// Any reports whether at least one intent was detected.
func (i Intents) Any() bool {
	return i.Task != nil || i.Timetable != nil || i.KnowledgeQuery != nil || i.KnowledgeCreate != nil
}

// PriorityFromLevel maps the natural-language priority level onto the
// integer scale, defaulting to medium.
func PriorityFromLevel(level string) int {
	switch level {
	case "low":
		return model.PriorityLow
	case "high":
		return model.PriorityHigh
	default:
		return model.PriorityMedium
	}
}
