package day90

import (
	"context"
	"encoding/json"
	"fmt"

	"wholenow/internal/adapters/storage/document"
	domain "wholenow/internal/domain/day90"
)

// Reserved (non-cell) document keys inside the namespace.
const (
	settingsDoc = "settings"
	goalDoc     = "goal"
	remarkDoc   = "remark"
)

// DocStore implements Store over users/{uid}/90day-progress/{key}.
type DocStore struct {
	docs document.Store
}

// NewDocStore creates a tracker store.
func NewDocStore(docs document.Store) *DocStore {
	return &DocStore{docs: docs}
}

func prefix(userID string) string {
	return "users/" + userID + "/90day-progress/"
}

// LoadBoard reads every document in the user's tracker namespace with one
// prefix scan. Malformed documents are skipped, absent ones default.
func (s *DocStore) LoadBoard(ctx context.Context, userID string) (Board, error) {
	raw, err := s.docs.ListByPrefix(ctx, prefix(userID))
	if err != nil {
		return Board{}, fmt.Errorf("load tracker: %w", err)
	}

	board := Board{Notes: make(map[int]domain.Note)}
	for key, fields := range raw {
		switch key {
		case settingsDoc:
			json.Unmarshal(fields, &board.Settings)
		case goalDoc:
			json.Unmarshal(fields, &board.Goal)
		case remarkDoc:
			json.Unmarshal(fields, &board.Remark)
		default:
			n, err := domain.ParseKey(key)
			if err != nil {
				continue
			}
			var note domain.Note
			if json.Unmarshal(fields, &note) == nil {
				board.Notes[n] = note
			}
		}
	}
	return board, nil
}

// SaveNote overwrites one day cell document.
// PRE: domain.ValidIndex(index)
func (s *DocStore) SaveNote(ctx context.Context, userID string, index int, note domain.Note) error {
	return s.set(ctx, userID, domain.Key(index), note)
}

// SaveSettings overwrites the settings document.
func (s *DocStore) SaveSettings(ctx context.Context, userID string, settings domain.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.docs.Set(ctx, prefix(userID)+settingsDoc, raw)
}

// SaveGoal overwrites the goal document.
func (s *DocStore) SaveGoal(ctx context.Context, userID string, note domain.Note) error {
	return s.set(ctx, userID, goalDoc, note)
}

// SaveRemark overwrites the remark document.
func (s *DocStore) SaveRemark(ctx context.Context, userID string, note domain.Note) error {
	return s.set(ctx, userID, remarkDoc, note)
}

func (s *DocStore) set(ctx context.Context, userID, key string, note domain.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return s.docs.Set(ctx, prefix(userID)+key, raw)
}
