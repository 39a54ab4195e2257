package day90

import (
	"context"

	domain "wholenow/internal/domain/day90"
)

// Board is everything persisted for one user's tracker: the day notes keyed
// by cell index, the window settings and the goal/remark free-text documents.
type Board struct {
	Notes    map[int]domain.Note
	Settings domain.Settings
	Goal     domain.Note
	Remark   domain.Note
}

// Store persists the 90-day tracker namespace.
type Store interface {
	// LoadBoard returns the whole namespace for a user. A first-time user
	// gets an empty Notes map and zero-value settings, never an error.
	LoadBoard(ctx context.Context, userID string) (Board, error)
	SaveNote(ctx context.Context, userID string, index int, note domain.Note) error
	SaveSettings(ctx context.Context, userID string, s domain.Settings) error
	SaveGoal(ctx context.Context, userID string, note domain.Note) error
	SaveRemark(ctx context.Context, userID string, note domain.Note) error
}
