package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"wholenow/internal/domain/calendar"
	"wholenow/internal/domain/learnprogress"
)

// LearnStoreForSave defines the store interface needed by SaveLearnEntry.
type LearnStoreForSave interface {
	LoadWeek(ctx context.Context, userID string, year int, month time.Month, week int) (map[string]learnprogress.Entry, error)
	SaveWeek(ctx context.Context, userID string, year int, month time.Month, week int, entries map[string]learnprogress.Entry) error
}

// SaveLearnEntryInput carries input for the orchestrator: the full record for
// one day of one week, replacing whatever the week document held for that day.
type SaveLearnEntryInput struct {
	UserID string
	Year   int
	Month  time.Month
	Week   int // 1-based Monday-first week of the month
	Day    int // day of month the entry belongs to
	Entry  learnprogress.Entry
}

// SaveLearnEntryDeps holds dependencies for SaveLearnEntry.
type SaveLearnEntryDeps struct {
	LearnStore LearnStoreForSave
}

// ExecuteSaveLearnEntry merges one day's record into the week document.
// PRE: Week >= 1; Year/Month/Day name a real date
// POST: Week document overwritten with the merged mapping; other days untouched
// INVARIANT: Concurrent saves to the same week are last-writer-wins
func ExecuteSaveLearnEntry(ctx context.Context, input SaveLearnEntryInput, deps SaveLearnEntryDeps) error {
	if input.Week < 1 {
		return learnprogress.ErrBadWeek
	}
	if err := input.Entry.Validate(); err != nil {
		return err
	}

	entries, err := deps.LearnStore.LoadWeek(ctx, input.UserID, input.Year, input.Month, input.Week)
	if err != nil {
		return err
	}

	key := dayKeyInWeek(input)
	if input.Entry.IsEmpty() {
		delete(entries, key)
	} else {
		entries[key] = input.Entry
	}

	if err := deps.LearnStore.SaveWeek(ctx, input.UserID, input.Year, input.Month, input.Week, entries); err != nil {
		return err
	}

	slog.Info("learn_event", "event", "entry_saved", "user_id", input.UserID,
		"day", key, "empty", input.Entry.IsEmpty())
	return nil
}

// dayKeyInWeek resolves the composite key for the edited day. Spill days from
// an adjacent month are keyed by their own date, not the selected month, so
// the key must come from the week's actual dates.
func dayKeyInWeek(input SaveLearnEntryInput) string {
	for _, d := range calendar.DaysOfWeek(input.Year, input.Month, input.Week, time.Time{}) {
		if d.Day == input.Day {
			return learnprogress.DayKey(d.Year, d.Month, d.Day)
		}
	}
	return learnprogress.DayKey(input.Year, input.Month, input.Day)
}
