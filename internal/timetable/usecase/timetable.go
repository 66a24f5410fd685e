package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"studyflow/internal/model"
	"studyflow/internal/timetable"
	"studyflow/internal/timetable/repository"
	"studyflow/pkg/gcalendar"
)

// RRULE day codes indexed by lowercase English weekday.
var rruleDays = map[string]string{
	"monday":    "MO",
	"tuesday":   "TU",
	"wednesday": "WE",
	"thursday":  "TH",
	"friday":    "FR",
	"saturday":  "SA",
	"sunday":    "SU",
}

func (uc *implUseCase) Confirm(ctx context.Context, sc model.Scope, input timetable.ConfirmInput) (model.TimetableClass, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.TimetableClass{}, timetable.ErrEmptyName
	}

	day := strings.ToLower(strings.TrimSpace(input.Day))
	if _, ok := rruleDays[day]; !ok {
		return model.TimetableClass{}, timetable.ErrInvalidDay
	}

	start, err := parseClock(input.StartTime)
	if err != nil {
		return model.TimetableClass{}, timetable.ErrInvalidTime
	}
	end, err := parseClock(input.EndTime)
	if err != nil || !end.After(start) {
		return model.TimetableClass{}, timetable.ErrInvalidTime
	}

	period := input.Period
	if period < 1 {
		period = DerivePeriod(input.StartTime, input.EndTime)
	}

	color := input.Color
	if color == "" {
		color = timetable.DefaultColor
	}
	icon := input.Icon
	if icon == "" {
		icon = timetable.DefaultIcon
	}

	created, err := uc.repo.CreateClass(ctx, repository.CreateClassOptions{
		UserID:     sc.UserID,
		Name:       name,
		Day:        day,
		Period:     period,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Room:       input.Room,
		Instructor: input.Instructor,
		Color:      color,
		Icon:       icon,
	})
	if err != nil {
		uc.l.Errorf(ctx, "timetable.usecase.Confirm.CreateClass: %v", err)
		return model.TimetableClass{}, err
	}

	// Calendar sync is best effort; the confirmed class stands either way.
	if uc.calendar != nil {
		if err := uc.syncCalendar(ctx, created); err != nil {
			uc.l.Warnf(ctx, "timetable.usecase.Confirm.syncCalendar: %v", err)
		}
	}

	return created, nil
}

func (uc *implUseCase) Week(ctx context.Context, sc model.Scope) (timetable.WeekOutput, error) {
	classes, err := uc.repo.ListClasses(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "timetable.usecase.Week.ListClasses: %v", err)
		return timetable.WeekOutput{}, err
	}

	days := make(map[string][]model.TimetableClass, len(model.WeekDays))
	for _, day := range model.WeekDays {
		days[day] = []model.TimetableClass{}
	}
	for _, c := range classes {
		days[c.Day] = append(days[c.Day], c)
	}
	return timetable.WeekOutput{Days: days}, nil
}

func (uc *implUseCase) syncCalendar(ctx context.Context, c model.TimetableClass) error {
	loc, err := time.LoadLocation(uc.timezone)
	if err != nil {
		loc = time.UTC
	}

	startClock, _ := parseClock(c.StartTime)
	endClock, _ := parseClock(c.EndTime)

	first := nextWeekday(time.Now().In(loc), c.Day)
	start := time.Date(first.Year(), first.Month(), first.Day(), startClock.Hour(), startClock.Minute(), 0, 0, loc)
	end := time.Date(first.Year(), first.Month(), first.Day(), endClock.Hour(), endClock.Minute(), 0, 0, loc)

	_, err = uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     c.Name,
		Description: strings.TrimSpace("Instructor: " + c.Instructor),
		Location:    c.Room,
		StartTime:   start,
		EndTime:     end,
		Timezone:    uc.timezone,
		WeeklyOn:    rruleDays[c.Day],
	})
	return err
}

// DerivePeriod converts a start/end time pair into a period count of
// whole hours, rounded, never below 1.
func DerivePeriod(startTime, endTime string) int {
	start, err := parseClock(startTime)
	if err != nil {
		return 1
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 1
	}
	hours := end.Sub(start).Hours()
	period := int(math.Round(hours))
	if period < 1 {
		period = 1
	}
	return period
}

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return t, nil
}

// nextWeekday returns the next occurrence of the named day on or after ref.
func nextWeekday(ref time.Time, day string) time.Time {
	targets := map[string]time.Weekday{
		"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
		"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
		"sunday": time.Sunday,
	}
	offset := (int(targets[day]) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, offset)
}
