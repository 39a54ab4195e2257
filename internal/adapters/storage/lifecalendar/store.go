package lifecalendar

import "context"

// Store persists the life-calendar namespace: a single document per user
// mapping age-year to markdown content.
type Store interface {
	// LoadCells returns all cell contents keyed by age-year. A user who
	// never wrote a cell gets an empty map, never an error.
	LoadCells(ctx context.Context, userID string) (map[int]string, error)
	// SaveCells overwrites the whole cells document. Last-writer-wins: the
	// caller merges its change into the loaded map first.
	SaveCells(ctx context.Context, userID string, cells map[int]string) error
}
