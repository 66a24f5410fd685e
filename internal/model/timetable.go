package model

import "time"

// Weekday names used for timetable grouping, lowercase English.
var WeekDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// TimetableClass is a recurring weekly class slot. Only written through
// the explicit confirm endpoint, never from the chat pipeline.
type TimetableClass struct {
	ID         string
	UserID     string
	Name       string
	Day        string // lowercase English weekday
	Period     int    // >= 1
	StartTime  string // "HH:MM"
	EndTime    string // "HH:MM"
	Room       string
	Instructor string
	Color      string
	Icon       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
