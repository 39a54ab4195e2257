package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"wholenow/internal/domain/account"
)

func storedAccount(t *testing.T, email, password string) account.Account {
	t.Helper()
	a := account.Account{ID: "acct-1", Email: email, Role: account.RoleUser, CreatedAt: time.Now()}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	return a
}

func TestExecuteLogin_Success(t *testing.T) {
	accounts := newMockAccountStore()
	accounts.accounts["acct-1"] = storedAccount(t, "alice@example.com", "a-long-password")

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "a-long-password",
	}, LoginDeps{AccountStore: accounts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AccountID != "acct-1" {
		t.Errorf("expected AccountID=acct-1, got %s", result.AccountID)
	}
	if result.Role != account.RoleUser {
		t.Errorf("expected role user, got %s", result.Role)
	}
}

func TestExecuteLogin_WrongPasswordRecordsFailure(t *testing.T) {
	accounts := newMockAccountStore()
	accounts.accounts["acct-1"] = storedAccount(t, "alice@example.com", "a-long-password")

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password-1",
	}, LoginDeps{AccountStore: accounts})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if accounts.accounts["acct-1"].FailedLogins != 1 {
		t.Errorf("expected 1 recorded failure, got %d", accounts.accounts["acct-1"].FailedLogins)
	}
}

func TestExecuteLogin_LockedAfterFiveFailures(t *testing.T) {
	accounts := newMockAccountStore()
	accounts.accounts["acct-1"] = storedAccount(t, "alice@example.com", "a-long-password")

	for i := 0; i < 5; i++ {
		_, _ = ExecuteLogin(context.Background(), LoginInput{
			Email:    "alice@example.com",
			Password: "wrong-password-1",
		}, LoginDeps{AccountStore: accounts})
	}

	// Correct password must now be rejected with the lockout error.
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "a-long-password",
	}, LoginDeps{AccountStore: accounts})
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

func TestExecuteLogin_UnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "a-long-password",
	}, LoginDeps{AccountStore: newMockAccountStore()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestExecuteLogin_SuccessResetsFailures(t *testing.T) {
	accounts := newMockAccountStore()
	a := storedAccount(t, "alice@example.com", "a-long-password")
	a.FailedLogins = 3
	accounts.accounts["acct-1"] = a

	_, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "a-long-password",
	}, LoginDeps{AccountStore: accounts})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accounts.accounts["acct-1"].FailedLogins != 0 {
		t.Errorf("expected failures reset, got %d", accounts.accounts["acct-1"].FailedLogins)
	}
}
