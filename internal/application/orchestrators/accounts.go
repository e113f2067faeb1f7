package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	accountDomain "clubhouse/internal/domain/account"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountStore persists operator accounts.
type AccountStore interface {
	GetByUsername(ctx context.Context, username string) (accountDomain.Account, error)
	Save(ctx context.Context, a accountDomain.Account) error
	Count(ctx context.Context) (int, error)
}

// AccountDeps holds dependencies for the account use cases.
type AccountDeps struct {
	Accounts AccountStore
}

// CreateAccountInput carries input for operator account creation.
type CreateAccountInput struct {
	Username string
	Password string
	Role     string
}

// ExecuteCreateAccount creates an operator login.
// PRE: input fields are populated
// POST: Account persisted with a bcrypt hash; the plaintext is never stored
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps AccountDeps) (accountDomain.Account, error) {
	a := accountDomain.Account{
		ID:        uuid.New().String(),
		Username:  input.Username,
		Role:      input.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return accountDomain.Account{}, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return accountDomain.Account{}, err
	}
	if err := deps.Accounts.Save(ctx, a); err != nil {
		return accountDomain.Account{}, err
	}
	slog.Info("account_event", "event", "account_created", "username", a.Username, "role", a.Role)
	return a, nil
}

// ExecuteLogin verifies operator credentials.
// POST: Returns the account on success; ErrInvalidCredentials otherwise
func ExecuteLogin(ctx context.Context, username, password string, deps AccountDeps) (accountDomain.Account, error) {
	a, err := deps.Accounts.GetByUsername(ctx, username)
	if err != nil {
		return accountDomain.Account{}, ErrInvalidCredentials
	}
	if err := a.CheckPassword(password); err != nil {
		return accountDomain.Account{}, ErrInvalidCredentials
	}
	slog.Info("account_event", "event", "login", "username", a.Username)
	return a, nil
}

// ExecuteSeedAdmin creates the initial admin account when no accounts exist
// yet. Called once at startup; a non-empty accounts table makes it a no-op.
func ExecuteSeedAdmin(ctx context.Context, username, password string, deps AccountDeps) error {
	n, err := deps.Accounts.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Username: username,
		Password: password,
		Role:     accountDomain.RoleAdmin,
	}, deps)
	if err != nil {
		return err
	}
	slog.Info("account_event", "event", "admin_seeded", "username", username)
	return nil
}
