package day90

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wholenow/internal/domain/grid"
)

// The tracker has 90 date-addressed day cells plus one completion cell that
// is never date-labeled.
const (
	TotalDays       = 90
	CompletionIndex = TotalDays + 1
)

// Max length constants for user-editable fields.
const (
	MaxContentLength = 5000
	MaxGoalLength    = 500
)

// StartDateLayout is the ISO date layout used for the tracker start date.
const StartDateLayout = "2006-01-02"

// Domain errors
var (
	ErrBadCellIndex   = errors.New("cell index must be between 1 and 91")
	ErrBadCellKey     = errors.New("cell key must have the form day-N")
	ErrBadStartDate   = errors.New("start date must be an ISO date (YYYY-MM-DD)")
	ErrContentTooLong = fmt.Errorf("cell content cannot exceed %d characters", MaxContentLength)
)

// Note is the persisted record for one day cell.
type Note struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings configures a user's tracker window.
type Settings struct {
	StartDate string `json:"startDate"` // ISO date; empty means not configured
}

// Validate checks the settings invariants.
func (s *Settings) Validate() error {
	if s.StartDate == "" {
		return nil
	}
	if _, err := time.ParseInLocation(StartDateLayout, s.StartDate, time.Local); err != nil {
		return ErrBadStartDate
	}
	return nil
}

// Start returns the parsed start date, false when unset or malformed.
// INVARIANT: Settings fields are not mutated
func (s *Settings) Start() (time.Time, bool) {
	if s.StartDate == "" {
		return time.Time{}, false
	}
	start, err := time.ParseInLocation(StartDateLayout, s.StartDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

// ValidIndex reports whether n addresses a tracker cell, the completion cell
// included.
func ValidIndex(n int) bool {
	return n >= 1 && n <= CompletionIndex
}

// Key returns the stable storage key for a cell index, e.g. 37 -> "day-37".
// PRE: ValidIndex(n)
func Key(n int) string {
	return fmt.Sprintf("day-%d", n)
}

// ParseKey is the inverse of Key.
// POST: returns ErrBadCellKey or ErrBadCellIndex for anything Key cannot produce
func ParseKey(key string) (int, error) {
	rest, ok := strings.CutPrefix(key, "day-")
	if !ok {
		return 0, ErrBadCellKey
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, ErrBadCellKey
	}
	if !ValidIndex(n) {
		return 0, ErrBadCellIndex
	}
	return n, nil
}

// DateFor returns the calendar date represented by cell n: cell 1 is the
// start date itself. The completion cell carries no date.
// PRE: 1 <= n <= TotalDays
func DateFor(start time.Time, n int) time.Time {
	return start.AddDate(0, 0, n-1)
}

// PhaseFor classifies a day cell against today's local date. The completion
// cell is Future until every tracked day has passed.
func PhaseFor(start time.Time, n int, today time.Time) grid.Phase {
	if n == CompletionIndex {
		if sameOrAfter(today, DateFor(start, TotalDays).AddDate(0, 0, 1)) {
			return grid.Current
		}
		return grid.Future
	}
	date := DateFor(start, n)
	switch {
	case sameDate(date, today):
		return grid.Current
	case date.Before(today):
		return grid.Past
	default:
		return grid.Future
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameOrAfter(a, b time.Time) bool {
	return sameDate(a, b) || a.After(b)
}
