package profile

import (
	"context"

	domain "wholenow/internal/domain/profile"
)

// Store persists the per-user profile document.
type Store interface {
	// Get returns the stored profile, or sign-up defaults when the user has
	// never saved one. Absence is not an error.
	Get(ctx context.Context, userID string) (domain.Profile, error)
	Save(ctx context.Context, userID string, p domain.Profile) error
}
