package learnprogress

import (
	"context"
	"time"

	domain "wholenow/internal/domain/learnprogress"
)

// Store persists the learning-progress namespace: one document per selected
// week holding a mapping from composite date key to the day's record.
type Store interface {
	// LoadWeek returns the week's entries keyed by composite date key.
	// A week that was never written yields an empty map, never an error.
	LoadWeek(ctx context.Context, userID string, year int, month time.Month, week int) (map[string]domain.Entry, error)
	// SaveWeek overwrites the whole week document. Last-writer-wins: the
	// caller merges its change into the loaded map first.
	SaveWeek(ctx context.Context, userID string, year int, month time.Month, week int, entries map[string]domain.Entry) error
}
