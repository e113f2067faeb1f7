package instructor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/instructor"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new instructor store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Add inserts an instructor.
// PRE: i has been validated
// POST: Instructor is persisted, or ErrDuplicateDNI
func (s *SQLiteStore) Add(ctx context.Context, i domain.Instructor) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT dni FROM instructor WHERE dni = ?", i.DNI).Scan(&existing)
	if err == nil {
		return domain.ErrDuplicateDNI
	}
	if err != sql.ErrNoRows {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO instructor (dni, first_name, last_name, phone, address, start_date, sport)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.DNI, i.FirstName, i.LastName, i.Phone, i.Address,
		i.StartDate.Format(storage.DateFormat), i.Sport)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes an instructor by DNI.
// PRE: dni is non-empty
// POST: Row is removed or ErrNotFound
func (s *SQLiteStore) Delete(ctx context.Context, dni string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM instructor WHERE dni = ?", dni)
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

// List returns the whole roster ordered by last name.
// PRE: none
// POST: Returns all instructors
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Instructor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dni, first_name, last_name, phone, address, start_date, sport
		 FROM instructor ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Instructor
	for rows.Next() {
		var i domain.Instructor
		var startDate string
		if err := rows.Scan(&i.DNI, &i.FirstName, &i.LastName, &i.Phone, &i.Address, &startDate, &i.Sport); err != nil {
			return nil, err
		}
		if i.StartDate, err = time.Parse(storage.DateFormat, startDate); err != nil {
			return nil, fmt.Errorf("bad start_date %q: %w", startDate, err)
		}
		results = append(results, i)
	}
	return results, rows.Err()
}
