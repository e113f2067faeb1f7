package orchestrators

import (
	"context"
	"log/slog"
	"sort"
	"time"

	ledgerDomain "clubhouse/internal/domain/ledger"
)

// LedgerReader is the reporting surface over the ledger.
type LedgerReader interface {
	ListSocialFees(ctx context.Context, p ledgerDomain.Period) ([]ledgerDomain.Entry, error)
	ListSportFees(ctx context.Context, p ledgerDomain.Period) ([]ledgerDomain.Entry, error)
	SumByKind(ctx context.Context, p ledgerDomain.Period) (map[string]int64, error)
	SumByKindLifetime(ctx context.Context) (map[string]int64, error)
}

// MonthlyReportInput selects the month to report on. An empty Period token
// means the month containing Now.
type MonthlyReportInput struct {
	Period string
	Now    time.Time
}

// MonthlyReportDeps holds dependencies for MonthlyReport.
type MonthlyReportDeps struct {
	Ledger LedgerReader
}

// KindTotal is one line of the per-kind breakdown, ordered by kind.
type KindTotal struct {
	Kind        string
	AmountCents int64
}

// MonthlyReport is the income statement for one calendar month.
type MonthlyReport struct {
	Period          ledgerDomain.Period
	SocialFees      []ledgerDomain.Entry
	SportFees       []ledgerDomain.Entry
	Totals          []KindTotal
	GrandTotalCents int64
}

// ExecuteMonthlyReport assembles the income report for one month. Every
// figure derives from the ledger alone; deleted members and removed sports
// still appear in the months they paid.
// PRE: input.Period is empty or an MM-YYYY token
// POST: Report entries fall inside the period; GrandTotalCents equals the sum
// of the per-kind totals
func ExecuteMonthlyReport(ctx context.Context, input MonthlyReportInput, deps MonthlyReportDeps) (MonthlyReport, error) {
	var p ledgerDomain.Period
	if input.Period == "" {
		p = ledgerDomain.CurrentPeriod(input.Now)
	} else {
		var err error
		p, err = ledgerDomain.ParsePeriod(input.Period)
		if err != nil {
			return MonthlyReport{}, err
		}
	}

	social, err := deps.Ledger.ListSocialFees(ctx, p)
	if err != nil {
		return MonthlyReport{}, err
	}
	sports, err := deps.Ledger.ListSportFees(ctx, p)
	if err != nil {
		return MonthlyReport{}, err
	}
	sums, err := deps.Ledger.SumByKind(ctx, p)
	if err != nil {
		return MonthlyReport{}, err
	}

	totals, grand := sortTotals(sums)

	slog.Info("report_event",
		"event", "monthly_report",
		"period_start", p.Start.Format("2006-01-02"),
		"entries", len(social)+len(sports),
		"grand_total_cents", grand,
	)

	return MonthlyReport{
		Period:          p,
		SocialFees:      social,
		SportFees:       sports,
		Totals:          totals,
		GrandTotalCents: grand,
	}, nil
}

// LifetimeReport is the all-time per-kind income breakdown.
type LifetimeReport struct {
	Totals          []KindTotal
	GrandTotalCents int64
}

// ExecuteLifetimeReport totals the entire ledger by payment kind.
func ExecuteLifetimeReport(ctx context.Context, deps MonthlyReportDeps) (LifetimeReport, error) {
	sums, err := deps.Ledger.SumByKindLifetime(ctx)
	if err != nil {
		return LifetimeReport{}, err
	}
	totals, grand := sortTotals(sums)
	return LifetimeReport{Totals: totals, GrandTotalCents: grand}, nil
}

func sortTotals(sums map[string]int64) ([]KindTotal, int64) {
	totals := make([]KindTotal, 0, len(sums))
	var grand int64
	for kind, amount := range sums {
		totals = append(totals, KindTotal{Kind: kind, AmountCents: amount})
		grand += amount
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Kind < totals[j].Kind })
	return totals, grand
}
