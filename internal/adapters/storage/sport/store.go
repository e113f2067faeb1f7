package sport

import (
	"context"

	domain "clubhouse/internal/domain/sport"
)

// Store persists the sport catalog. The catalog table is the single source
// of truth: there is no in-memory copy to fall out of sync.
type Store interface {
	Configure(ctx context.Context, s domain.Sport) error
	Get(ctx context.Context, name string) (domain.Sport, error)
	List(ctx context.Context) ([]domain.Sport, error)
	Delete(ctx context.Context, name string) error
}
