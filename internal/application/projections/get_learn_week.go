package projections

import (
	"context"
	"time"

	"wholenow/internal/domain/calendar"
	"wholenow/internal/domain/learnprogress"
)

// LearnWeekStore defines the store interface needed by the learn week projection.
type LearnWeekStore interface {
	LoadWeek(ctx context.Context, userID string, year int, month time.Month, week int) (map[string]learnprogress.Entry, error)
}

// GetLearnWeekQuery carries input for the learn week projection. A zero Year
// selects today's year, month and week.
type GetLearnWeekQuery struct {
	UserID string
	Year   int
	Month  time.Month
	Week   int
}

// GetLearnWeekDeps holds dependencies for the learn week projection.
type GetLearnWeekDeps struct {
	LearnStore LearnWeekStore
	Now        func() time.Time
}

// LearnDay is one row of the rendered week table.
type LearnDay struct {
	Key       string // composite date key for saves
	Day       int    // day of month, for addressing saves
	DateLabel string // "Mar 10"
	Weekday   string // "Mon"
	IsToday   bool
	InMonth   bool // false for spill days from adjacent months
	Entry     learnprogress.Entry
}

// LearnWeekResult carries the output of the learn week projection.
type LearnWeekResult struct {
	Year         int
	Month        time.Month
	Week         int
	WeeksInMonth int
	Days         []LearnDay // always 7, Monday first
}

// QueryGetLearnWeek assembles one week of the learning-progress table: the 7
// Monday-first days of the selected week joined with the stored entries.
func QueryGetLearnWeek(ctx context.Context, query GetLearnWeekQuery, deps GetLearnWeekDeps) (LearnWeekResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	today := now()

	year, month, week := query.Year, query.Month, query.Week
	if year == 0 {
		year, month = today.Year(), today.Month()
		week = calendar.WeekOfMonth(year, month, today.Day())
	}
	if week < 1 {
		week = 1
	}
	if max := calendar.WeeksInMonth(year, month); week > max {
		week = max
	}

	entries, err := deps.LearnStore.LoadWeek(ctx, query.UserID, year, month, week)
	if err != nil {
		return LearnWeekResult{}, err
	}

	result := LearnWeekResult{
		Year:         year,
		Month:        month,
		Week:         week,
		WeeksInMonth: calendar.WeeksInMonth(year, month),
		Days:         make([]LearnDay, 0, 7),
	}
	for _, d := range calendar.DaysOfWeek(year, month, week, today) {
		key := learnprogress.DayKey(d.Year, d.Month, d.Day)
		result.Days = append(result.Days, LearnDay{
			Key:       key,
			Day:       d.Day,
			DateLabel: d.Date(time.Local).Format("Jan 2"),
			Weekday:   d.Weekday,
			IsToday:   d.IsToday,
			InMonth:   d.Month == month,
			Entry:     entries[key],
		})
	}
	return result, nil
}
