package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wholenow/internal/adapters/email"
	"wholenow/internal/domain/account"
	"wholenow/internal/domain/profile"

	"github.com/google/uuid"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// ProfileStoreForCreate defines the profile store interface needed by CreateAccount.
type ProfileStoreForCreate interface {
	Save(ctx context.Context, userID string, p profile.Profile) error
}

// CreateAccountInput carries input for the orchestrator.
type CreateAccountInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	ProfileStore ProfileStoreForCreate
	EmailSender  email.Sender
	FromAddress  string // Default from address
}

var ErrEmailAlreadyExists = errors.New("an account with this email already exists")

// ExecuteCreateAccount coordinates account creation: the account record, the
// default profile document and the welcome email.
// PRE: Valid email, password >= 12 chars, valid role
// POST: Account created with hashed password; profile saved with defaults
// INVARIANT: Email must be unique
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	if input.Email == "" {
		return "", errors.New("email cannot be empty")
	}
	if input.Password == "" {
		return "", errors.New("password cannot be empty")
	}
	if input.Role == "" {
		return "", errors.New("role cannot be empty")
	}

	// Check if email already exists
	_, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailAlreadyExists
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: time.Now(),
	}

	// Validate domain rules
	if err := acct.Validate(); err != nil {
		return "", err
	}

	// Set password (handles hashing and length validation)
	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}

	p := profile.New(input.DisplayName)
	if err := p.Validate(time.Now()); err != nil {
		return "", err
	}

	// Save to store
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", err
	}
	if err := deps.ProfileStore.Save(ctx, acct.ID, p); err != nil {
		return "", err
	}

	// Welcome email is best-effort; account creation must not fail on it.
	if deps.EmailSender != nil {
		if _, err := deps.EmailSender.Send(ctx, welcomeEmail(deps.FromAddress, input.Email, input.DisplayName)); err != nil {
			slog.Error("welcome_email_failed", "error", err, "email", input.Email)
		}
	}

	slog.Info("auth_event", "event", "account_created", "email", input.Email, "role", input.Role)

	return acct.ID, nil
}

func welcomeEmail(from, to, displayName string) email.SendRequest {
	name := displayName
	if name == "" {
		name = "there"
	}
	return email.SendRequest{
		From:    from,
		To:      []string{to},
		Subject: "Welcome to WholeNow",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your WholeNow board is ready. Set your birth date in "+
				"Settings to unlock the life calendar, then pick a start date for "+
				"your 90-day tracker.</p>", name),
	}
}

// ExecuteSeedAdmin creates a default admin account if no accounts exist.
// PRE: Database is initialized
// POST: Admin account created if count == 0
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, emailAddr, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Accounts already exist, skip seeding
	}

	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:       emailAddr,
		Password:    password,
		DisplayName: "Admin",
		Role:        account.RoleAdmin,
	}, deps)
	if err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", emailAddr)
	return nil
}
