package orchestrators

import (
	"context"
	"log/slog"

	sportDomain "clubhouse/internal/domain/sport"
)

// SportWriter is the catalog mutation surface.
type SportWriter interface {
	Configure(ctx context.Context, s sportDomain.Sport) error
	List(ctx context.Context) ([]sportDomain.Sport, error)
	Delete(ctx context.Context, name string) error
}

// ConfigureSportDeps holds dependencies for ConfigureSport.
type ConfigureSportDeps struct {
	Sports SportWriter
}

// ExecuteConfigureSport creates or replaces a catalog offering. Configuring
// an existing name overwrites every field; enrollments already taken keep the
// amounts they were charged at.
// PRE: s carries the full offering definition
// POST: Catalog holds exactly one offering under s.Name
func ExecuteConfigureSport(ctx context.Context, s sportDomain.Sport, deps ConfigureSportDeps) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := deps.Sports.Configure(ctx, s); err != nil {
		return err
	}
	slog.Info("catalog_event",
		"event", "sport_configured",
		"sport", s.Name,
		"capacity", s.Capacity,
		"fee_cents", s.FeeCents,
	)
	return nil
}

// ExecuteListSports returns the catalog ordered by name.
func ExecuteListSports(ctx context.Context, deps ConfigureSportDeps) ([]sportDomain.Sport, error) {
	return deps.Sports.List(ctx)
}

// ExecuteRemoveSport drops an offering from the catalog. Historical ledger
// entries referencing the sport are untouched.
func ExecuteRemoveSport(ctx context.Context, name string, deps ConfigureSportDeps) error {
	if err := deps.Sports.Delete(ctx, name); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "sport_removed", "sport", name)
	return nil
}
