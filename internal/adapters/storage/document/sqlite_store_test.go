package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"wholenow/internal/adapters/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestGetMissingDocument(t *testing.T) {
	store := newTestStore(t)
	fields, found, err := store.Get(context.Background(), "users/u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || fields != nil {
		t.Error("missing document must report found=false, not an error")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Embedded line breaks and markup must survive byte-for-byte.
	doc, _ := json.Marshal(map[string]string{
		"content": "# goal\n\n- step one\n- step two\n**bold**",
	})
	if err := store.Set(ctx, "users/u1/90day-progress/day-1", doc); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := store.Get(ctx, "users/u1/90day-progress/day-1")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(got) != string(doc) {
		t.Errorf("round-trip mismatch:\n got %s\nwant %s", got, doc)
	}
}

func TestSetIsIdempotentAndLastWriterWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	path := "users/u1/lifecalendar/cells"

	first := json.RawMessage(`{"30":"learned Go"}`)
	if err := store.Set(ctx, path, first); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, path, first); err != nil {
		t.Fatalf("repeat Set: %v", err)
	}
	got, _, _ := store.Get(ctx, path)
	if string(got) != string(first) {
		t.Errorf("idempotence broken: got %s", got)
	}

	second := json.RawMessage(`{"30":"rewrote it"}`)
	if err := store.Set(ctx, path, second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _, _ = store.Get(ctx, path)
	if string(got) != string(second) {
		t.Errorf("overwrite lost: got %s", got)
	}
}

func TestListByPrefixIsolatesNamespaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docs := map[string]string{
		"users/u1/90day-progress/day-1":   `{"content":"a"}`,
		"users/u1/90day-progress/day-12":  `{"content":"b"}`,
		"users/u1/learnprogress/2025-0-1": `{}`,
		"users/u2/90day-progress/day-1":   `{"content":"other user"}`,
	}
	for p, f := range docs {
		if err := store.Set(ctx, p, json.RawMessage(f)); err != nil {
			t.Fatalf("Set(%s): %v", p, err)
		}
	}

	got, err := store.ListByPrefix(ctx, "users/u1/90day-progress/")
	if err != nil {
		t.Fatalf("ListByPrefix: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d documents, want 2", len(got))
	}
	if string(got["day-1"]) != `{"content":"a"}` || string(got["day-12"]) != `{"content":"b"}` {
		t.Errorf("unexpected documents: %v", got)
	}
}

func TestListByPrefixEmpty(t *testing.T) {
	store := newTestStore(t)
	got, err := store.ListByPrefix(context.Background(), "users/nobody/")
	if err != nil {
		t.Fatalf("ListByPrefix: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map for first-time user, got %v", got)
	}
}
