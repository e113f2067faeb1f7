package orchestrators

import (
	"context"
	"log/slog"

	sportDomain "clubhouse/internal/domain/sport"
)

// defaultSports is the starter catalog written into an empty database.
var defaultSports = []sportDomain.Sport{
	{
		Name:       "Football",
		Days:       "Mon/Wed/Fri",
		Hours:      "18:00-20:00",
		Instructor: "TBD",
		Capacity:   22,
		FeeCents:   15000,
	},
	{
		Name:       "Tennis",
		Days:       "Tue/Thu",
		Hours:      "17:00-19:00",
		Instructor: "TBD",
		Capacity:   8,
		FeeCents:   20000,
	},
	{
		Name:       "Swimming",
		Days:       "Mon/Wed/Fri",
		Hours:      "08:00-10:00",
		Instructor: "TBD",
		Capacity:   15,
		FeeCents:   18000,
	},
}

// ExecuteSeedSports installs the starter catalog when none exists yet.
// Called once at startup; a non-empty catalog makes it a no-op.
func ExecuteSeedSports(ctx context.Context, deps ConfigureSportDeps) error {
	existing, err := deps.Sports.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, s := range defaultSports {
		if err := deps.Sports.Configure(ctx, s); err != nil {
			return err
		}
	}
	slog.Info("catalog_event", "event", "catalog_seeded", "sports", len(defaultSports))
	return nil
}
