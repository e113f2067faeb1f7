package ledger

import (
	"context"

	domain "clubhouse/internal/domain/ledger"
)

// Store persists ledger entries. The ledger is append-only: the interface
// carries no update or delete.
type Store interface {
	Append(ctx context.Context, e domain.Entry) (int64, error)
	GetByID(ctx context.Context, id int64) (domain.Entry, error)
	ListSocialFees(ctx context.Context, p domain.Period) ([]domain.Entry, error)
	ListSportFees(ctx context.Context, p domain.Period) ([]domain.Entry, error)
	SumByKind(ctx context.Context, p domain.Period) (map[string]int64, error)
	SumByKindLifetime(ctx context.Context) (map[string]int64, error)
}
