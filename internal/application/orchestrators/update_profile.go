package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"wholenow/internal/domain/profile"
)

// ProfileStoreForUpdate defines the store interface needed by UpdateProfile.
type ProfileStoreForUpdate interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
	Save(ctx context.Context, userID string, p profile.Profile) error
}

// UpdateProfileInput carries input for the orchestrator. Lifespan comes in as
// the raw form value so a blank submission keeps the stored value.
type UpdateProfileInput struct {
	UserID           string
	DisplayName      string
	BirthDate        string // ISO date or empty to clear
	ExpectedLifespan int    // 0 keeps the stored value
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	ProfileStore ProfileStoreForUpdate
	Now          func() time.Time
}

// ExecuteUpdateProfile validates and saves the settings document.
// PRE: UserID identifies an existing account
// POST: Profile saved; a lifespan outside [max(age,1), MaxLifespan] is rejected, not clamped
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) error {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	today := now()

	p, err := deps.ProfileStore.Get(ctx, input.UserID)
	if err != nil {
		return err
	}

	p.DisplayName = strings.TrimSpace(input.DisplayName)
	p.BirthDate = strings.TrimSpace(input.BirthDate)
	if input.ExpectedLifespan != 0 {
		p.ExpectedLifespan = input.ExpectedLifespan
	}

	if err := p.Validate(today); err != nil {
		return err
	}

	if err := deps.ProfileStore.Save(ctx, input.UserID, p); err != nil {
		return err
	}

	slog.Info("profile_event", "event", "profile_updated", "user_id", input.UserID,
		"has_birth_date", p.BirthDate != "", "lifespan", p.ExpectedLifespan)
	return nil
}
