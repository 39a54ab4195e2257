package learnprogress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wholenow/internal/adapters/storage/document"
	domain "wholenow/internal/domain/learnprogress"
)

// DocStore implements Store over users/{uid}/learnprogress/{year-month-week}.
type DocStore struct {
	docs document.Store
}

// NewDocStore creates a learning-progress store.
func NewDocStore(docs document.Store) *DocStore {
	return &DocStore{docs: docs}
}

func path(userID string, year int, month time.Month, week int) string {
	return "users/" + userID + "/learnprogress/" + domain.WeekDocKey(year, month, week)
}

// LoadWeek reads one week document.
// POST: missing or malformed document yields an empty map, never an error
func (s *DocStore) LoadWeek(ctx context.Context, userID string, year int, month time.Month, week int) (map[string]domain.Entry, error) {
	raw, found, err := s.docs.Get(ctx, path(userID, year, month, week))
	if err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	entries := make(map[string]domain.Entry)
	if !found {
		return entries, nil
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return make(map[string]domain.Entry), nil
	}
	return entries, nil
}

// SaveWeek overwrites the week document with the full entry mapping.
func (s *DocStore) SaveWeek(ctx context.Context, userID string, year int, month time.Month, week int, entries map[string]domain.Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.docs.Set(ctx, path(userID, year, month, week), raw)
}
