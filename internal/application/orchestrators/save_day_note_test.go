package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wholenow/internal/domain/day90"
)

// mockTrackerStore implements the tracker store interfaces for testing.
type mockTrackerStore struct {
	notes    map[int]day90.Note
	settings day90.Settings
	goal     day90.Note
	remark   day90.Note
}

func newMockTrackerStore() *mockTrackerStore {
	return &mockTrackerStore{notes: make(map[int]day90.Note)}
}

func (m *mockTrackerStore) SaveNote(_ context.Context, _ string, index int, note day90.Note) error {
	m.notes[index] = note
	return nil
}

func (m *mockTrackerStore) SaveSettings(_ context.Context, _ string, settings day90.Settings) error {
	m.settings = settings
	return nil
}

func (m *mockTrackerStore) SaveGoal(_ context.Context, _ string, note day90.Note) error {
	m.goal = note
	return nil
}

func (m *mockTrackerStore) SaveRemark(_ context.Context, _ string, note day90.Note) error {
	m.remark = note
	return nil
}

func TestExecuteSaveDayNote_Valid(t *testing.T) {
	store := newMockTrackerStore()

	err := ExecuteSaveDayNote(context.Background(), SaveDayNoteInput{
		UserID:  "acct-1",
		Index:   37,
		Content: "- ran 5km",
	}, SaveDayNoteDeps{TrackerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	note, ok := store.notes[37]
	if !ok {
		t.Fatal("expected note persisted at cell 37")
	}
	if note.Content != "- ran 5km" {
		t.Errorf("expected content saved verbatim, got %q", note.Content)
	}
	if !note.UpdatedAt.Equal(fixedTime) {
		t.Errorf("expected UpdatedAt=%v, got %v", fixedTime, note.UpdatedAt)
	}
}

func TestExecuteSaveDayNote_EmptyContentIsValid(t *testing.T) {
	store := newMockTrackerStore()

	err := ExecuteSaveDayNote(context.Background(), SaveDayNoteInput{
		UserID: "acct-1",
		Index:  1,
	}, SaveDayNoteDeps{TrackerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("clearing a cell must be a valid save: %v", err)
	}
	if _, ok := store.notes[1]; !ok {
		t.Error("expected empty note persisted")
	}
}

func TestExecuteSaveDayNote_CompletionCell(t *testing.T) {
	store := newMockTrackerStore()

	err := ExecuteSaveDayNote(context.Background(), SaveDayNoteInput{
		UserID:  "acct-1",
		Index:   day90.CompletionIndex,
		Content: "done!",
	}, SaveDayNoteDeps{TrackerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("completion cell must be writable: %v", err)
	}
}

func TestExecuteSaveDayNote_BadIndex(t *testing.T) {
	for _, index := range []int{0, -1, day90.CompletionIndex + 1} {
		err := ExecuteSaveDayNote(context.Background(), SaveDayNoteInput{
			UserID: "acct-1",
			Index:  index,
		}, SaveDayNoteDeps{TrackerStore: newMockTrackerStore(), Now: fixedNow})
		if !errors.Is(err, day90.ErrBadCellIndex) {
			t.Errorf("index %d: expected ErrBadCellIndex, got %v", index, err)
		}
	}
}

func TestExecuteSaveDayNote_ContentTooLong(t *testing.T) {
	err := ExecuteSaveDayNote(context.Background(), SaveDayNoteInput{
		UserID:  "acct-1",
		Index:   1,
		Content: strings.Repeat("x", day90.MaxContentLength+1),
	}, SaveDayNoteDeps{TrackerStore: newMockTrackerStore(), Now: fixedNow})
	if !errors.Is(err, day90.ErrContentTooLong) {
		t.Errorf("expected ErrContentTooLong, got %v", err)
	}
}

func TestExecuteSaveTrackerSettings_Valid(t *testing.T) {
	store := newMockTrackerStore()

	err := ExecuteSaveTrackerSettings(context.Background(), SaveTrackerSettingsInput{
		UserID:    "acct-1",
		StartDate: "2025-01-01",
	}, SaveTrackerSettingsDeps{TrackerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.settings.StartDate != "2025-01-01" {
		t.Errorf("expected start date saved, got %q", store.settings.StartDate)
	}
}

func TestExecuteSaveTrackerSettings_BadDate(t *testing.T) {
	err := ExecuteSaveTrackerSettings(context.Background(), SaveTrackerSettingsInput{
		UserID:    "acct-1",
		StartDate: "01/02/2025",
	}, SaveTrackerSettingsDeps{TrackerStore: newMockTrackerStore(), Now: fixedNow})
	if !errors.Is(err, day90.ErrBadStartDate) {
		t.Errorf("expected ErrBadStartDate, got %v", err)
	}
}

func TestExecuteSaveTrackerGoal_TooLong(t *testing.T) {
	err := ExecuteSaveTrackerGoal(context.Background(), SaveDayNoteInput{
		UserID:  "acct-1",
		Content: strings.Repeat("x", day90.MaxGoalLength+1),
	}, SaveTrackerSettingsDeps{TrackerStore: newMockTrackerStore(), Now: fixedNow})
	if err == nil {
		t.Error("expected over-length goal to be rejected")
	}
}

func TestExecuteSaveTrackerRemark_Valid(t *testing.T) {
	store := newMockTrackerStore()

	err := ExecuteSaveTrackerRemark(context.Background(), SaveDayNoteInput{
		UserID:  "acct-1",
		Content: "pace yourself",
	}, SaveTrackerSettingsDeps{TrackerStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.remark.Content != "pace yourself" {
		t.Errorf("expected remark saved, got %q", store.remark.Content)
	}
}
