package account

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/account"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByUsername retrieves an account by username.
// PRE: username is non-empty
// POST: Returns the account or an error if not found
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM account WHERE username = ?", username)

	var a domain.Account
	var createdAt string
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Account{}, fmt.Errorf("account not found: %w", err)
	}
	if err != nil {
		return domain.Account{}, err
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Account{}, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	return a, nil
}

// Save persists an account (insert or update).
// PRE: a has been validated and has a password hash
// POST: Account row matches a
func (s *SQLiteStore) Save(ctx context.Context, a domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO account (id, username, password_hash, role, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   username = excluded.username,
		   password_hash = excluded.password_hash,
		   role = excluded.role`,
		a.ID, a.Username, a.PasswordHash, a.Role, a.CreatedAt.Format(time.RFC3339))
	return err
}

// Count returns the total number of accounts.
// PRE: none
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM account").Scan(&count)
	return count, err
}
