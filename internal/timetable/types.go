package timetable

import "studyflow/internal/model"

// Defaults applied to confirmed classes when the caller omits them.
const (
	DefaultColor = "#6366F1"
	DefaultIcon  = "book"
)

// ConfirmInput persists a class the user explicitly confirmed. Period 0
// means "derive from start/end times".
type ConfirmInput struct {
	Name       string
	Day        string
	Period     int
	StartTime  string // "HH:MM"
	EndTime    string // "HH:MM"
	Room       string
	Instructor string
	Color      string
	Icon       string
}

// WeekOutput is the full weekly timetable grouped by day name, every
// day present even when empty.
type WeekOutput struct {
	Days map[string][]model.TimetableClass
}
