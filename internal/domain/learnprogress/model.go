package learnprogress

import (
	"errors"
	"fmt"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxFieldLength = 2000
)

// Field names of one day's record, in table column order.
var Fields = []string{"goal", "achievement", "hours", "notes", "keywords", "question", "ideas"}

// Domain errors
var (
	ErrFieldTooLong = fmt.Errorf("entry field cannot exceed %d characters", MaxFieldLength)
	ErrBadWeek      = errors.New("week number must be at least 1")
)

// Entry is the multi-field record for one day of the learning-progress
// table. Every field is free text; hours is kept as text too (type coercion
// only, no validation beyond length — first-time rows are all empty).
type Entry struct {
	Goal        string `json:"goal,omitempty"`
	Achievement string `json:"achievement,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Question    string `json:"question,omitempty"`
	Ideas       string `json:"ideas,omitempty"`
}

// Validate checks field lengths.
func (e *Entry) Validate() error {
	for _, f := range []string{e.Goal, e.Achievement, e.Hours, e.Notes, e.Keywords, e.Question, e.Ideas} {
		if len(f) > MaxFieldLength {
			return ErrFieldTooLong
		}
	}
	return nil
}

// IsEmpty reports whether every field is blank.
// INVARIANT: Entry fields are not mutated
func (e *Entry) IsEmpty() bool {
	return e.Goal == "" && e.Achievement == "" && e.Hours == "" &&
		e.Notes == "" && e.Keywords == "" && e.Question == "" && e.Ideas == ""
}

// DayKey returns the composite date key identifying one day's record inside
// a week document. The month is serialized 0-based (January = 0) because
// that is the format of previously stored data; nothing else in the code
// uses 0-based months.
func DayKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%d-%d-%d", year, int(month)-1, day)
}

// WeekDocKey returns the document key for one selected week: the year, the
// 0-based month and the 1-based Monday-first week of that month.
// PRE: week >= 1
func WeekDocKey(year int, month time.Month, week int) string {
	return fmt.Sprintf("%d-%d-%d", year, int(month)-1, week)
}
