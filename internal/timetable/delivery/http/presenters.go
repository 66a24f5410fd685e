package http

import (
	"studyflow/internal/model"
	"studyflow/internal/timetable"
)

// --- Request DTOs ---

type confirmReq struct {
	Name       string `json:"name"       binding:"required,min=1,max=255"`
	Day        string `json:"day"        binding:"required"`
	Period     int    `json:"period"     binding:"omitempty,min=1"`
	StartTime  string `json:"start_time" binding:"required,datetime=15:04"`
	EndTime    string `json:"end_time"   binding:"required,datetime=15:04"`
	Room       string `json:"room"       binding:"max=255"`
	Instructor string `json:"instructor" binding:"max=255"`
	Color      string `json:"color"      binding:"omitempty,hexcolor"`
	Icon       string `json:"icon"       binding:"max=64"`
}

func (r confirmReq) validate() error { return nil }

func (r confirmReq) toInput() timetable.ConfirmInput {
	return timetable.ConfirmInput{
		Name:       r.Name,
		Day:        r.Day,
		Period:     r.Period,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Room:       r.Room,
		Instructor: r.Instructor,
		Color:      r.Color,
		Icon:       r.Icon,
	}
}

// --- Response DTOs ---

type classResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Day        string `json:"day"`
	Period     int    `json:"period"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Room       string `json:"room,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

func newClassResp(cl model.TimetableClass) classResp {
	return classResp{
		ID:         cl.ID,
		Name:       cl.Name,
		Day:        cl.Day,
		Period:     cl.Period,
		StartTime:  cl.StartTime,
		EndTime:    cl.EndTime,
		Room:       cl.Room,
		Instructor: cl.Instructor,
		Color:      cl.Color,
		Icon:       cl.Icon,
	}
}

type weekResp struct {
	Days map[string][]classResp `json:"days"`
}

func (h *handler) newWeekResp(out timetable.WeekOutput) weekResp {
	days := make(map[string][]classResp, len(out.Days))
	for day, classes := range out.Days {
		list := make([]classResp, len(classes))
		for i, cl := range classes {
			list[i] = newClassResp(cl)
		}
		days[day] = list
	}
	return weekResp{Days: days}
}
