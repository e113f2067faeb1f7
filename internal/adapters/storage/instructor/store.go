package instructor

import (
	"context"

	domain "clubhouse/internal/domain/instructor"
)

// Store persists the instructor roster.
type Store interface {
	Add(ctx context.Context, i domain.Instructor) error
	Delete(ctx context.Context, dni string) error
	List(ctx context.Context) ([]domain.Instructor, error)
}
