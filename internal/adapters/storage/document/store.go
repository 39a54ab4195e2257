package document

import (
	"context"
	"encoding/json"
)

// Store is arbitrary key-to-document storage addressed by hierarchical paths
// of the form users/{uid}/{namespace}/{key}. Documents are opaque JSON
// objects; Set is a full-document overwrite (last-writer-wins, idempotent)
// and a missing document is reported via found=false, never as an error.
//
// The per-namespace stores are the only components that construct paths.
type Store interface {
	Get(ctx context.Context, path string) (fields json.RawMessage, found bool, err error)
	Set(ctx context.Context, path string, fields json.RawMessage) error
	// ListByPrefix returns every document whose path starts with prefix,
	// keyed by the remainder of the path after the prefix.
	ListByPrefix(ctx context.Context, prefix string) (map[string]json.RawMessage, error)
}
