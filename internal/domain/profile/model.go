package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wholenow/internal/domain/calendar"
)

// Defaults and bounds for profile fields.
const (
	DefaultLifespan   = 80
	MaxLifespan       = 150
	MaxDisplayNameLen = 100
	BirthDateLayout   = "2006-01-02"
)

// Domain errors
var (
	ErrInvalidBirthDate = errors.New("birth date must be an ISO date (YYYY-MM-DD)")
	ErrBirthInFuture    = errors.New("birth date cannot be in the future")
)

// Profile holds the per-user settings document: created at sign-up with
// defaults, mutated only through the settings page, never deleted.
type Profile struct {
	DisplayName      string
	BirthDate        string // ISO date, empty until the user sets it
	ExpectedLifespan int    // years
}

// New returns a fresh profile with sign-up defaults.
func New(displayName string) Profile {
	return Profile{
		DisplayName:      displayName,
		ExpectedLifespan: DefaultLifespan,
	}
}

// Validate checks the profile's invariants against today's date.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (p *Profile) Validate(today time.Time) error {
	if len(p.DisplayName) > MaxDisplayNameLen {
		return fmt.Errorf("display name cannot exceed %d characters", MaxDisplayNameLen)
	}
	if p.BirthDate != "" {
		birth, err := time.ParseInLocation(BirthDateLayout, p.BirthDate, time.Local)
		if err != nil {
			return ErrInvalidBirthDate
		}
		if birth.After(today) {
			return ErrBirthInFuture
		}
	}
	min := p.MinLifespan(today)
	if p.ExpectedLifespan < min {
		return fmt.Errorf("expected lifespan cannot be below %d", min)
	}
	if p.ExpectedLifespan > MaxLifespan {
		return fmt.Errorf("expected lifespan cannot exceed %d", MaxLifespan)
	}
	return nil
}

// Age returns the current age derived from the birth date, false when no
// birth date has been set.
// INVARIANT: Profile fields are not mutated
func (p *Profile) Age(today time.Time) (int, bool) {
	birth, ok := p.birth()
	if !ok {
		return 0, false
	}
	return calendar.Age(birth, today), true
}

// MinLifespan returns the lowest acceptable expected lifespan: the current
// age when a birth date is set, 1 otherwise.
func (p *Profile) MinLifespan(today time.Time) int {
	if age, ok := p.Age(today); ok {
		return age
	}
	return 1
}

// BirthYear returns the year of birth, false when no birth date is set.
func (p *Profile) BirthYear() (int, bool) {
	birth, ok := p.birth()
	if !ok {
		return 0, false
	}
	return birth.Year(), true
}

// Lifespan returns ExpectedLifespan, falling back to the default when the
// stored document predates the field.
func (p *Profile) Lifespan() int {
	if p.ExpectedLifespan <= 0 {
		return DefaultLifespan
	}
	return p.ExpectedLifespan
}

func (p *Profile) birth() (time.Time, bool) {
	if strings.TrimSpace(p.BirthDate) == "" {
		return time.Time{}, false
	}
	birth, err := time.ParseInLocation(BirthDateLayout, p.BirthDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return birth, true
}
