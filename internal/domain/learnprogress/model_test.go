package learnprogress

import (
	"strings"
	"testing"
	"time"
)

func TestDayKeyUsesZeroBasedMonth(t *testing.T) {
	// January is stored as month 0, matching existing documents.
	if got := DayKey(2025, time.January, 5); got != "2025-0-5" {
		t.Errorf("DayKey = %q, want 2025-0-5", got)
	}
	if got := DayKey(2024, time.December, 30); got != "2024-11-30" {
		t.Errorf("DayKey = %q, want 2024-11-30", got)
	}
}

func TestWeekDocKey(t *testing.T) {
	if got := WeekDocKey(2025, time.January, 1); got != "2025-0-1" {
		t.Errorf("WeekDocKey = %q, want 2025-0-1", got)
	}
	if got := WeekDocKey(2025, time.March, 6); got != "2025-2-6" {
		t.Errorf("WeekDocKey = %q, want 2025-2-6", got)
	}
}

func TestEntryValidate(t *testing.T) {
	e := Entry{Goal: "read ch. 3", Hours: "2.5"}
	if err := e.Validate(); err != nil {
		t.Errorf("valid entry: %v", err)
	}
	long := Entry{Notes: strings.Repeat("x", MaxFieldLength+1)}
	if err := long.Validate(); err != ErrFieldTooLong {
		t.Errorf("overlong field: got %v, want %v", err, ErrFieldTooLong)
	}
}

func TestEntryIsEmpty(t *testing.T) {
	if !(&Entry{}).IsEmpty() {
		t.Error("zero entry must be empty")
	}
	if (&Entry{Ideas: "try flashcards"}).IsEmpty() {
		t.Error("entry with a field set must not be empty")
	}
}
