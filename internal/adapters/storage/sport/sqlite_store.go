package sport

import (
	"context"
	"database/sql"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/sport"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new sport catalog store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Configure upserts a sport. All fields are overwritten on conflict, never
// merged with prior values.
// PRE: s has been validated
// POST: Sport row matches s exactly
func (s *SQLiteStore) Configure(ctx context.Context, sp domain.Sport) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sport (name, days, hours, instructor, capacity, fee_cents)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   days = excluded.days,
		   hours = excluded.hours,
		   instructor = excluded.instructor,
		   capacity = excluded.capacity,
		   fee_cents = excluded.fee_cents`,
		sp.Name, sp.Days, sp.Hours, sp.Instructor, sp.Capacity, sp.FeeCents)
	return err
}

// Get retrieves a sport by name.
// PRE: name is non-empty
// POST: Returns the sport or sport.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, name string) (domain.Sport, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT name, days, hours, instructor, capacity, fee_cents FROM sport WHERE name = ?", name)

	var sp domain.Sport
	err := row.Scan(&sp.Name, &sp.Days, &sp.Hours, &sp.Instructor, &sp.Capacity, &sp.FeeCents)
	if err == sql.ErrNoRows {
		return domain.Sport{}, domain.ErrNotFound
	}
	return sp, err
}

// List returns the whole catalog ordered by name.
// PRE: none
// POST: Returns all configured sports in a stable order
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Sport, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, days, hours, instructor, capacity, fee_cents FROM sport ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Sport
	for rows.Next() {
		var sp domain.Sport
		if err := rows.Scan(&sp.Name, &sp.Days, &sp.Hours, &sp.Instructor, &sp.Capacity, &sp.FeeCents); err != nil {
			return nil, err
		}
		results = append(results, sp)
	}
	return results, rows.Err()
}

// Delete removes a sport from the catalog.
// PRE: name is non-empty
// POST: Sport row is removed or sport.ErrNotFound
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sport WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
