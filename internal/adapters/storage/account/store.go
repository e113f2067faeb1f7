package account

import (
	"context"

	domain "clubhouse/internal/domain/account"
)

// Store persists operator accounts.
type Store interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
	Count(ctx context.Context) (int, error)
}
