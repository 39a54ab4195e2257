package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wholenow/internal/domain/lifecalendar"
	"wholenow/internal/domain/profile"
)

// mockLifeStore implements LifeStoreForSave for testing.
type mockLifeStore struct {
	cells map[int]string
}

func newMockLifeStore() *mockLifeStore {
	return &mockLifeStore{cells: make(map[int]string)}
}

func (m *mockLifeStore) LoadCells(_ context.Context, _ string) (map[int]string, error) {
	copied := make(map[int]string, len(m.cells))
	for k, v := range m.cells {
		copied[k] = v
	}
	return copied, nil
}

func (m *mockLifeStore) SaveCells(_ context.Context, _ string, cells map[int]string) error {
	m.cells = cells
	return nil
}

func lifeDeps(store *mockLifeStore, lifespan int) SaveLifeCellDeps {
	profiles := newMockProfileStore()
	profiles.profiles["acct-1"] = profile.Profile{ExpectedLifespan: lifespan}
	return SaveLifeCellDeps{LifeStore: store, ProfileStore: profiles, Now: fixedNow}
}

func TestExecuteSaveLifeCell_MergesIntoCalendar(t *testing.T) {
	store := newMockLifeStore()
	store.cells[25] = "moved abroad"

	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID:  "acct-1",
		Year:    30,
		Content: "- three decades",
	}, lifeDeps(store, 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.cells[25] != "moved abroad" {
		t.Error("expected other years untouched")
	}
	if store.cells[30] != "- three decades" {
		t.Errorf("expected year 30 saved verbatim, got %q", store.cells[30])
	}
}

func TestExecuteSaveLifeCell_BeyondLifespan(t *testing.T) {
	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID:  "acct-1",
		Year:    81,
		Content: "too far",
	}, lifeDeps(newMockLifeStore(), 80))
	if !errors.Is(err, lifecalendar.ErrBeyondLifespan) {
		t.Errorf("expected ErrBeyondLifespan, got %v", err)
	}
}

func TestExecuteSaveLifeCell_BadYear(t *testing.T) {
	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID: "acct-1",
		Year:   0,
	}, lifeDeps(newMockLifeStore(), 80))
	if !errors.Is(err, lifecalendar.ErrBadYear) {
		t.Errorf("expected ErrBadYear, got %v", err)
	}
}

func TestExecuteSaveLifeCell_EmptyContentRemovesCell(t *testing.T) {
	store := newMockLifeStore()
	store.cells[30] = "stale"

	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID: "acct-1",
		Year:   30,
	}, lifeDeps(store, 80))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.cells[30]; ok {
		t.Error("expected cleared cell removed from document")
	}
}

func TestExecuteSaveLifeCell_ContentTooLong(t *testing.T) {
	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID:  "acct-1",
		Year:    30,
		Content: strings.Repeat("x", lifecalendar.MaxContentLength+1),
	}, lifeDeps(newMockLifeStore(), 80))
	if !errors.Is(err, lifecalendar.ErrContentTooLong) {
		t.Errorf("expected ErrContentTooLong, got %v", err)
	}
}

func TestExecuteSaveLifeCell_DefaultLifespanWhenUnset(t *testing.T) {
	// A profile that predates the lifespan field falls back to the default.
	store := newMockLifeStore()
	profiles := newMockProfileStore()
	profiles.profiles["acct-1"] = profile.Profile{}

	err := ExecuteSaveLifeCell(context.Background(), SaveLifeCellInput{
		UserID:  "acct-1",
		Year:    profile.DefaultLifespan,
		Content: "final year",
	}, SaveLifeCellDeps{LifeStore: store, ProfileStore: profiles, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
