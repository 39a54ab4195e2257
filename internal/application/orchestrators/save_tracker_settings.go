package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wholenow/internal/domain/day90"
)

// TrackerStoreForSettings defines the store interface needed by the tracker
// settings orchestrators.
type TrackerStoreForSettings interface {
	SaveSettings(ctx context.Context, userID string, settings day90.Settings) error
	SaveGoal(ctx context.Context, userID string, note day90.Note) error
	SaveRemark(ctx context.Context, userID string, note day90.Note) error
}

// SaveTrackerSettingsInput carries input for the orchestrator.
type SaveTrackerSettingsInput struct {
	UserID    string
	StartDate string // ISO date; empty clears the window
}

// SaveTrackerSettingsDeps holds dependencies for the tracker settings orchestrators.
type SaveTrackerSettingsDeps struct {
	TrackerStore TrackerStoreForSettings
	Now          func() time.Time
}

// ExecuteSaveTrackerSettings sets or clears the tracker's 90-day window.
// POST: Settings document overwritten; existing day notes are untouched
func ExecuteSaveTrackerSettings(ctx context.Context, input SaveTrackerSettingsInput, deps SaveTrackerSettingsDeps) error {
	settings := day90.Settings{StartDate: input.StartDate}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := deps.TrackerStore.SaveSettings(ctx, input.UserID, settings); err != nil {
		return err
	}

	slog.Info("tracker_event", "event", "settings_saved", "user_id", input.UserID,
		"start_date", input.StartDate)
	return nil
}

// ExecuteSaveTrackerGoal overwrites the tracker's headline goal.
// POST: Goal document overwritten with a fresh timestamp
func ExecuteSaveTrackerGoal(ctx context.Context, input SaveDayNoteInput, deps SaveTrackerSettingsDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	if len(input.Content) > day90.MaxGoalLength {
		return fmt.Errorf("goal cannot exceed %d characters", day90.MaxGoalLength)
	}

	note := day90.Note{Content: input.Content, UpdatedAt: now()}
	if err := deps.TrackerStore.SaveGoal(ctx, input.UserID, note); err != nil {
		return err
	}

	slog.Info("tracker_event", "event", "goal_saved", "user_id", input.UserID)
	return nil
}

// ExecuteSaveTrackerRemark overwrites the tracker's free-form remark.
// POST: Remark document overwritten with a fresh timestamp
func ExecuteSaveTrackerRemark(ctx context.Context, input SaveDayNoteInput, deps SaveTrackerSettingsDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	if len(input.Content) > day90.MaxContentLength {
		return day90.ErrContentTooLong
	}

	note := day90.Note{Content: input.Content, UpdatedAt: now()}
	if err := deps.TrackerStore.SaveRemark(ctx, input.UserID, note); err != nil {
		return err
	}

	slog.Info("tracker_event", "event", "remark_saved", "user_id", input.UserID)
	return nil
}
