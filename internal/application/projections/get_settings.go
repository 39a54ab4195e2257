package projections

import (
	"context"
	"time"

	"wholenow/internal/domain/profile"
)

// SettingsProfileStore defines the profile store interface needed by the settings projection.
type SettingsProfileStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// GetSettingsQuery carries input for the settings projection.
type GetSettingsQuery struct {
	UserID string
}

// GetSettingsDeps holds dependencies for the settings projection.
type GetSettingsDeps struct {
	ProfileStore SettingsProfileStore
	Now          func() time.Time
}

// SettingsResult carries the output of the settings projection.
type SettingsResult struct {
	DisplayName      string
	BirthDate        string // ISO date or empty
	ExpectedLifespan int
	Age              int  // derived; 0 when no birth date is set
	HasAge           bool // whether a birth date is set
	MinLifespan      int  // lowest acceptable lifespan for the form
	MaxLifespan      int
}

// QueryGetSettings assembles the settings page view from the profile document.
func QueryGetSettings(ctx context.Context, query GetSettingsQuery, deps GetSettingsDeps) (SettingsResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	today := now()

	p, err := deps.ProfileStore.Get(ctx, query.UserID)
	if err != nil {
		return SettingsResult{}, err
	}

	age, hasAge := p.Age(today)
	return SettingsResult{
		DisplayName:      p.DisplayName,
		BirthDate:        p.BirthDate,
		ExpectedLifespan: p.Lifespan(),
		Age:              age,
		HasAge:           hasAge,
		MinLifespan:      p.MinLifespan(today),
		MaxLifespan:      profile.MaxLifespan,
	}, nil
}
