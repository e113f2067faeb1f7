package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/ledger"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ledger store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const entryColumns = "id, dni, amount_cents, kind, method, payment_date, due_date, person_kind"

// InsertEntry appends one ledger entry using the given querier, which may be
// a transaction shared with other writes.
// PRE: e is well-formed; q is a live DB or open transaction
// POST: Entry is inserted, its assigned id returned
func InsertEntry(ctx context.Context, q storage.Querier, e domain.Entry) (int64, error) {
	res, err := q.ExecContext(ctx,
		`INSERT INTO ledger_entry (dni, amount_cents, kind, method, payment_date, due_date, person_kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.DNI,
		e.AmountCents,
		e.Kind,
		e.Method,
		e.PaymentDate.Format(storage.DateFormat),
		e.DueDate.Format(storage.DateFormat),
		e.PersonKind,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return res.LastInsertId()
}

// Append appends one entry outside any caller-held transaction.
// PRE: e is well-formed
// POST: Entry is persisted, id returned; fails only on a storage fault
func (s *SQLiteStore) Append(ctx context.Context, e domain.Entry) (int64, error) {
	return InsertEntry(ctx, s.db, e)
}

// GetByID retrieves a single entry by id.
// PRE: id > 0
// POST: Returns the entry or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM ledger_entry WHERE id = ?", id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("ledger entry not found: %w", err)
	}
	return e, err
}

// ListSocialFees returns social fee entries inside the period, newest first.
// PRE: p covers a valid inclusive range
// POST: Returns entries with kind "Social Fee" ordered by payment date descending
func (s *SQLiteStore) ListSocialFees(ctx context.Context, p domain.Period) ([]domain.Entry, error) {
	return s.listByPeriod(ctx, "kind = ?", p, domain.KindSocialFee)
}

// ListSportFees returns sport fee entries inside the period, newest first.
// PRE: p covers a valid inclusive range
// POST: Returns entries with kind "Fee: <sport>" ordered by payment date descending
func (s *SQLiteStore) ListSportFees(ctx context.Context, p domain.Period) ([]domain.Entry, error) {
	return s.listByPeriod(ctx, "kind LIKE ? AND kind != ?", p, "Fee: %", domain.KindSocialFee)
}

func (s *SQLiteStore) listByPeriod(ctx context.Context, kindCond string, p domain.Period, kindArgs ...any) ([]domain.Entry, error) {
	args := append([]any{}, kindArgs...)
	args = append(args, p.Start.Format(storage.DateFormat), p.End.Format(storage.DateFormat))

	query := "SELECT " + entryColumns + " FROM ledger_entry WHERE " + kindCond +
		" AND payment_date BETWEEN ? AND ? ORDER BY payment_date DESC, id DESC"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// SumByKind totals entries per payment kind inside the period. Kinds are
// grouped exactly as stored: each sport's fee kind is its own group.
// PRE: p covers a valid inclusive range
// POST: Returns kind -> total cents for entries in the period
func (s *SQLiteStore) SumByKind(ctx context.Context, p domain.Period) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, SUM(amount_cents) FROM ledger_entry
		 WHERE payment_date BETWEEN ? AND ? GROUP BY kind`,
		p.Start.Format(storage.DateFormat), p.End.Format(storage.DateFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSums(rows)
}

// SumByKindLifetime totals entries per payment kind with no date filter.
// PRE: none
// POST: Returns kind -> total cents over the whole ledger
func (s *SQLiteStore) SumByKindLifetime(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, SUM(amount_cents) FROM ledger_entry GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSums(rows)
}

func scanSums(rows *sql.Rows) (map[string]int64, error) {
	totals := make(map[string]int64)
	for rows.Next() {
		var kind string
		var total int64
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, err
		}
		totals[kind] = total
	}
	return totals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var e domain.Entry
	var paymentDate, dueDate string
	err := row.Scan(
		&e.ID,
		&e.DNI,
		&e.AmountCents,
		&e.Kind,
		&e.Method,
		&paymentDate,
		&dueDate,
		&e.PersonKind,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	if e.PaymentDate, err = time.Parse(storage.DateFormat, paymentDate); err != nil {
		return domain.Entry{}, fmt.Errorf("bad payment_date %q: %w", paymentDate, err)
	}
	if e.DueDate, err = time.Parse(storage.DateFormat, dueDate); err != nil {
		return domain.Entry{}, fmt.Errorf("bad due_date %q: %w", dueDate, err)
	}
	return e, nil
}
