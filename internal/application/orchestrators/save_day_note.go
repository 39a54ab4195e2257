package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"wholenow/internal/domain/day90"
)

// TrackerStoreForSaveNote defines the store interface needed by SaveDayNote.
type TrackerStoreForSaveNote interface {
	SaveNote(ctx context.Context, userID string, index int, note day90.Note) error
}

// SaveDayNoteInput carries input for the orchestrator.
type SaveDayNoteInput struct {
	UserID  string
	Index   int    // 1..91; 91 is the completion cell
	Content string // markdown, saved verbatim
}

// SaveDayNoteDeps holds dependencies for SaveDayNote.
type SaveDayNoteDeps struct {
	TrackerStore TrackerStoreForSaveNote
	Now          func() time.Time
}

// ExecuteSaveDayNote commits one tracker cell's content.
// PRE: Index addresses a tracker cell
// POST: Cell overwritten with content and a fresh timestamp; empty content is a valid save
func ExecuteSaveDayNote(ctx context.Context, input SaveDayNoteInput, deps SaveDayNoteDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	if !day90.ValidIndex(input.Index) {
		return day90.ErrBadCellIndex
	}
	if len(input.Content) > day90.MaxContentLength {
		return day90.ErrContentTooLong
	}

	note := day90.Note{Content: input.Content, UpdatedAt: now()}
	if err := deps.TrackerStore.SaveNote(ctx, input.UserID, input.Index, note); err != nil {
		return err
	}

	slog.Info("tracker_event", "event", "day_note_saved", "user_id", input.UserID,
		"cell", input.Index, "bytes", len(input.Content))
	return nil
}
