package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"wholenow/internal/domain/lifecalendar"
	"wholenow/internal/domain/profile"
)

// LifeStoreForSave defines the store interface needed by SaveLifeCell.
type LifeStoreForSave interface {
	LoadCells(ctx context.Context, userID string) (map[int]string, error)
	SaveCells(ctx context.Context, userID string, cells map[int]string) error
}

// ProfileStoreForSaveLifeCell defines the profile store interface needed by SaveLifeCell.
type ProfileStoreForSaveLifeCell interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// SaveLifeCellInput carries input for the orchestrator.
type SaveLifeCellInput struct {
	UserID  string
	Year    int    // age year, 1-based
	Content string // markdown, saved verbatim
}

// SaveLifeCellDeps holds dependencies for SaveLifeCell.
type SaveLifeCellDeps struct {
	LifeStore    LifeStoreForSave
	ProfileStore ProfileStoreForSaveLifeCell
	Now          func() time.Time
}

// ExecuteSaveLifeCell merges one age-year cell into the calendar document.
// PRE: UserID identifies an existing account
// POST: Cells document overwritten with the merged mapping; other years untouched
// INVARIANT: Year must lie within the profile's expected lifespan
func ExecuteSaveLifeCell(ctx context.Context, input SaveLifeCellInput, deps SaveLifeCellDeps) error {
	if len(input.Content) > lifecalendar.MaxContentLength {
		return lifecalendar.ErrContentTooLong
	}

	p, err := deps.ProfileStore.Get(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := lifecalendar.ValidYear(input.Year, p.Lifespan()); err != nil {
		return err
	}

	cells, err := deps.LifeStore.LoadCells(ctx, input.UserID)
	if err != nil {
		return err
	}

	if input.Content == "" {
		delete(cells, input.Year)
	} else {
		cells[input.Year] = input.Content
	}

	if err := deps.LifeStore.SaveCells(ctx, input.UserID, cells); err != nil {
		return err
	}

	slog.Info("life_event", "event", "cell_saved", "user_id", input.UserID,
		"year", input.Year, "bytes", len(input.Content))
	return nil
}
