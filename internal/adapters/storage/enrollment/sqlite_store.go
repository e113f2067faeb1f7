package enrollment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubhouse/internal/adapters/storage"
	ledgerStore "clubhouse/internal/adapters/storage/ledger"
	domain "clubhouse/internal/domain/enrollment"
	ledgerDomain "clubhouse/internal/domain/ledger"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new enrollment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts the enrollment and its fee ledger entry in one transaction.
// The enrollment insert is guarded by the capacity subquery, so the count
// check and the insert are a single statement under the write lock.
// PRE: the sport exists; e and fee describe the same payment
// POST: Both rows persisted and ledger id returned, or a domain error and
// no partial state
func (s *SQLiteStore) Create(ctx context.Context, e domain.Enrollment, fee ledgerDomain.Entry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM enrollment WHERE dni = ? AND sport_name = ?",
		e.DNI, e.SportName).Scan(&existing)
	if err == nil {
		return 0, domain.ErrAlreadyEnrolled
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO enrollment (id, dni, sport_name, amount_cents, enrolled_at)
		 SELECT ?, ?, ?, ?, ?
		 WHERE (SELECT COUNT(*) FROM enrollment WHERE sport_name = ?) <
		       (SELECT capacity FROM sport WHERE name = ?)`,
		e.ID, e.DNI, e.SportName, e.AmountCents,
		e.EnrolledAt.Format(storage.DateFormat),
		e.SportName, e.SportName)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrCapacityExceeded
	}

	entryID, err := ledgerStore.InsertEntry(ctx, tx, fee)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return entryID, nil
}

// Exists reports whether an enrollment exists for the (dni, sport) pair.
// PRE: dni and sportName are non-empty
// POST: Returns true if the pair is enrolled
func (s *SQLiteStore) Exists(ctx context.Context, dni, sportName string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM enrollment WHERE dni = ? AND sport_name = ?", dni, sportName).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of live enrollments for a sport.
// PRE: sportName is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context, sportName string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM enrollment WHERE sport_name = ?", sportName).Scan(&count)
	return count, err
}

// ListBySport returns the enrollments for one sport ordered by DNI.
// PRE: sportName is non-empty
// POST: Returns matching enrollments
func (s *SQLiteStore) ListBySport(ctx context.Context, sportName string) ([]domain.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dni, sport_name, amount_cents, enrolled_at
		 FROM enrollment WHERE sport_name = ? ORDER BY dni`, sportName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		var enrolledAt string
		if err := rows.Scan(&e.ID, &e.DNI, &e.SportName, &e.AmountCents, &enrolledAt); err != nil {
			return nil, err
		}
		if e.EnrolledAt, err = time.Parse(storage.DateFormat, enrolledAt); err != nil {
			return nil, fmt.Errorf("bad enrolled_at %q: %w", enrolledAt, err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
