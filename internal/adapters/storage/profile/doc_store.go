package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"wholenow/internal/adapters/storage/document"
	domain "wholenow/internal/domain/profile"
)

// DocStore implements Store over the document store at users/{uid}.
type DocStore struct {
	docs document.Store
}

// NewDocStore creates a profile store.
func NewDocStore(docs document.Store) *DocStore {
	return &DocStore{docs: docs}
}

// profileDoc mirrors the persisted field names.
type profileDoc struct {
	DisplayName      string `json:"displayName"`
	BirthDate        string `json:"birthDate,omitempty"`
	ExpectedLifespan int    `json:"expectedLifespan"`
}

func path(userID string) string {
	return "users/" + userID
}

// Get retrieves the profile, falling back to defaults for first-time users.
// POST: a missing or malformed document yields defaults, never an error
func (s *DocStore) Get(ctx context.Context, userID string) (domain.Profile, error) {
	raw, found, err := s.docs.Get(ctx, path(userID))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return domain.New(""), nil
	}
	var doc profileDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.New(""), nil
	}
	p := domain.Profile{
		DisplayName:      doc.DisplayName,
		BirthDate:        doc.BirthDate,
		ExpectedLifespan: doc.ExpectedLifespan,
	}
	if p.ExpectedLifespan <= 0 {
		p.ExpectedLifespan = domain.DefaultLifespan
	}
	return p, nil
}

// Save overwrites the profile document.
// PRE: p has been validated
func (s *DocStore) Save(ctx context.Context, userID string, p domain.Profile) error {
	raw, err := json.Marshal(profileDoc{
		DisplayName:      p.DisplayName,
		BirthDate:        p.BirthDate,
		ExpectedLifespan: p.Lifespan(),
	})
	if err != nil {
		return err
	}
	return s.docs.Set(ctx, path(userID), raw)
}
