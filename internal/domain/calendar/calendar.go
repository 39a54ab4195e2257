package calendar

import "time"

// Weekday labels in Monday-first order.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Day describes one calendar day as rendered in a grid. Month and Year carry
// the day's true month and year, which may differ from the selected month when
// a week spills across a month boundary.
type Day struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday string
	IsToday bool
}

// Date returns the day as a time.Time at midnight in the given location.
// INVARIANT: Day fields are not mutated
func (d Day) Date(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// WeekdayLabel returns the Monday-first label for a weekday.
func WeekdayLabel(w time.Weekday) string {
	return weekdayLabels[mondayIndex(w)]
}

// mondayIndex maps time.Weekday (Sunday=0) to Monday-first index (Monday=0).
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// firstMonday returns the Monday on or before the 1st of the month.
func firstMonday(year int, month time.Month) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return first.AddDate(0, 0, -mondayIndex(first.Weekday()))
}

// DaysOfWeek returns the 7 days of the given week of a month, Monday first.
// Week 1 begins on the Monday on or before the 1st of the month, so the first
// and last weeks may include days from the adjacent months; those days carry
// their true month and year. IsToday compares against today's local date.
// PRE: week >= 1
// POST: returns exactly 7 days in strictly increasing date order
func DaysOfWeek(year int, month time.Month, week int, today time.Time) [7]Day {
	start := firstMonday(year, month).AddDate(0, 0, (week-1)*7)
	var days [7]Day
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		days[i] = Day{
			Year:    d.Year(),
			Month:   d.Month(),
			Day:     d.Day(),
			Weekday: WeekdayLabel(d.Weekday()),
			IsToday: sameDate(d, today),
		}
	}
	return days
}

// WeekOfMonth returns the 1-based week number containing the given day, using
// the same Monday-first convention as DaysOfWeek: DaysOfWeek(y, m,
// WeekOfMonth(y, m, d)) always contains day d of month m.
func WeekOfMonth(year int, month time.Month, day int) int {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	offset := daysBetween(firstMonday(year, month), date)
	return offset/7 + 1
}

// WeeksInMonth returns how many Monday-first weeks the month spans.
func WeeksInMonth(year int, month time.Month) int {
	return WeekOfMonth(year, month, DaysInMonth(year, month))
}

// DaysInMonth returns the number of days in the month, leap years included.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthDates returns every day of the month in order with weekday labels.
func MonthDates(year int, month time.Month, today time.Time) []Day {
	total := DaysInMonth(year, month)
	days := make([]Day, 0, total)
	for n := 1; n <= total; n++ {
		d := time.Date(year, month, n, 0, 0, 0, 0, time.Local)
		days = append(days, Day{
			Year:    year,
			Month:   month,
			Day:     n,
			Weekday: WeekdayLabel(d.Weekday()),
			IsToday: sameDate(d, today),
		})
	}
	return days
}

// Age returns the age in whole years at today for the given birth date:
// the year difference, minus one if today falls before the birthday.
// Results below 1 are normalized to 1.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	if age < 1 {
		return 1
	}
	return age
}

// daysBetween counts whole calendar days from a to b, robust across DST.
func daysBetween(a, b time.Time) int {
	days := 0
	for a.Before(b) && !sameDate(a, b) {
		a = a.AddDate(0, 0, 1)
		days++
	}
	return days
}

// sameDate reports whether two times fall on the same calendar date in the
// local wall clock of each value. No UTC normalization: a user near midnight
// sees the day flip with their own clock.
func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
