package lifecalendar

import (
	"context"
	"encoding/json"
	"fmt"

	"wholenow/internal/adapters/storage/document"
)

// DocStore implements Store over users/{uid}/lifecalendar/cells.
type DocStore struct {
	docs document.Store
}

// NewDocStore creates a life-calendar store.
func NewDocStore(docs document.Store) *DocStore {
	return &DocStore{docs: docs}
}

func path(userID string) string {
	return "users/" + userID + "/lifecalendar/cells"
}

// LoadCells reads the cells document. JSON object keys are the age years as
// decimal strings; encoding/json maps them onto the int-keyed map directly.
// POST: missing or malformed document yields an empty map, never an error
func (s *DocStore) LoadCells(ctx context.Context, userID string) (map[int]string, error) {
	raw, found, err := s.docs.Get(ctx, path(userID))
	if err != nil {
		return nil, fmt.Errorf("load life calendar: %w", err)
	}
	cells := make(map[int]string)
	if !found {
		return cells, nil
	}
	if err := json.Unmarshal(raw, &cells); err != nil {
		return make(map[int]string), nil
	}
	return cells, nil
}

// SaveCells overwrites the cells document with the full mapping.
func (s *DocStore) SaveCells(ctx context.Context, userID string, cells map[int]string) error {
	raw, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	return s.docs.Set(ctx, path(userID), raw)
}
