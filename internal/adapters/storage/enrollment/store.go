package enrollment

import (
	"context"

	domain "clubhouse/internal/domain/enrollment"
	ledgerDomain "clubhouse/internal/domain/ledger"
)

// Store persists enrollments. Create runs the capacity-guarded insert and
// the ledger append in one transaction: the pair lands together or not at
// all, and the class can never be pushed over capacity by concurrent calls.
type Store interface {
	Create(ctx context.Context, e domain.Enrollment, fee ledgerDomain.Entry) (int64, error)
	Exists(ctx context.Context, dni, sportName string) (bool, error)
	Count(ctx context.Context, sportName string) (int, error)
	ListBySport(ctx context.Context, sportName string) ([]domain.Enrollment, error)
}
