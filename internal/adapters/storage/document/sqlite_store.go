package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"wholenow/internal/adapters/storage"
)

// SQLiteStore implements Store using a single document table.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new document store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves one document by path.
// PRE: path is non-empty
// POST: found=false for a missing document, never an error
func (s *SQLiteStore) Get(ctx context.Context, path string) (json.RawMessage, bool, error) {
	var fields string
	err := s.db.QueryRowContext(ctx,
		"SELECT fields FROM document WHERE path = ?", path).Scan(&fields)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(fields), true, nil
}

// Set overwrites the document at path with the supplied fields.
// PRE: fields is a valid JSON document
// POST: the stored document equals fields exactly; repeat calls are idempotent
func (s *SQLiteStore) Set(ctx context.Context, path string, fields json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO document (path, fields, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET fields=excluded.fields, updated_at=excluded.updated_at`,
		path, string(fields), time.Now().Format(time.RFC3339Nano))
	return err
}

// ListByPrefix returns all documents under a path prefix, keyed by the path
// remainder. An empty result is an empty map, not an error.
func (s *SQLiteStore) ListByPrefix(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, fields FROM document WHERE path LIKE ? ESCAPE '\\'",
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]json.RawMessage)
	for rows.Next() {
		var path, fields string
		if err := rows.Scan(&path, &fields); err != nil {
			return nil, err
		}
		result[strings.TrimPrefix(path, prefix)] = json.RawMessage(fields)
	}
	return result, rows.Err()
}

// escapeLike escapes LIKE metacharacters so prefixes match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
