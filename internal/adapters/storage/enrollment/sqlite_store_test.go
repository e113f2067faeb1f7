package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"clubhouse/internal/adapters/storage"
	domain "clubhouse/internal/domain/enrollment"
	ledgerDomain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
)

// openTestDB creates a file-backed SQLite database with the production
// connection options, so the guarded inserts run under the same locking
// behavior as the server.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") +
		"?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

// seedSport inserts a sport row directly.
func seedSport(t *testing.T, db *sql.DB, name string, capacity int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO sport (name, days, hours, instructor, capacity, fee_cents)
		 VALUES (?, 'Mon/Wed', '18:00-20:00', 'TBD', ?, 20000)`, name, capacity)
	if err != nil {
		t.Fatalf("failed to seed sport: %v", err)
	}
}

// countRows returns the row count of a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}

var payDay = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// tennisPair builds a matching enrollment and fee entry for one DNI.
func tennisPair(id, dni string) (domain.Enrollment, ledgerDomain.Entry) {
	e := domain.Enrollment{
		ID:          id,
		DNI:         dni,
		SportName:   "Tennis",
		AmountCents: 20000,
		EnrolledAt:  payDay,
	}
	fee := ledgerDomain.Entry{
		DNI:         dni,
		AmountCents: 20000,
		Kind:        ledgerDomain.SportFeeKind("Tennis"),
		Method:      ledgerDomain.MethodCash,
		PaymentDate: payDay,
		DueDate:     ledgerDomain.DueDate(payDay),
		PersonKind:  person.KindNonMember,
	}
	return e, fee
}

// TestCreate_PersistsEnrollmentAndFee verifies the two-row transaction.
// PRE: empty database with one sport.
// POST: one enrollment row and one ledger row, ledger id returned.
func TestCreate_PersistsEnrollmentAndFee(t *testing.T) {
	db := openTestDB(t)
	seedSport(t, db, "Tennis", 8)
	store := NewSQLiteStore(db)

	e, fee := tennisPair("e1", "40555666")
	entryID, err := store.Create(context.Background(), e, fee)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entryID == 0 {
		t.Error("entry id should be assigned")
	}
	if n := countRows(t, db, "enrollment"); n != 1 {
		t.Errorf("enrollment rows=%d want 1", n)
	}

	var amount int64
	var kind string
	err = db.QueryRow("SELECT amount_cents, kind FROM ledger_entry WHERE id = ?", entryID).Scan(&amount, &kind)
	if err != nil {
		t.Fatalf("ledger row missing: %v", err)
	}
	if amount != 20000 || kind != "Fee: Tennis" {
		t.Errorf("ledger row amount=%d kind=%q want 20000 %q", amount, kind, "Fee: Tennis")
	}

	list, err := store.ListBySport(context.Background(), "Tennis")
	if err != nil {
		t.Fatalf("ListBySport failed: %v", err)
	}
	if len(list) != 1 || !list[0].EnrolledAt.Equal(payDay) {
		t.Errorf("ListBySport=%+v want one entry enrolled %v", list, payDay)
	}
}

// TestCreate_DuplicateWritesNothing verifies uniqueness per (dni, sport).
// PRE: the pair is already enrolled.
// POST: ErrAlreadyEnrolled and no second ledger row.
func TestCreate_DuplicateWritesNothing(t *testing.T) {
	db := openTestDB(t)
	seedSport(t, db, "Tennis", 8)
	store := NewSQLiteStore(db)

	e, fee := tennisPair("e1", "40555666")
	if _, err := store.Create(context.Background(), e, fee); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	e2, fee2 := tennisPair("e2", "40555666")
	_, err := store.Create(context.Background(), e2, fee2)
	if !errors.Is(err, domain.ErrAlreadyEnrolled) {
		t.Fatalf("err=%v want ErrAlreadyEnrolled", err)
	}
	if n := countRows(t, db, "ledger_entry"); n != 1 {
		t.Errorf("ledger rows=%d want 1", n)
	}
	if n := countRows(t, db, "enrollment"); n != 1 {
		t.Errorf("enrollment rows=%d want 1", n)
	}
}

// TestCreate_CapacityGuardWritesNothing verifies the guarded insert.
// PRE: sport with capacity 1, seat taken.
// POST: ErrCapacityExceeded and neither row written.
func TestCreate_CapacityGuardWritesNothing(t *testing.T) {
	db := openTestDB(t)
	seedSport(t, db, "Tennis", 1)
	store := NewSQLiteStore(db)

	e, fee := tennisPair("e1", "40555666")
	if _, err := store.Create(context.Background(), e, fee); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	e2, fee2 := tennisPair("e2", "40555667")
	_, err := store.Create(context.Background(), e2, fee2)
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("err=%v want ErrCapacityExceeded", err)
	}
	if n := countRows(t, db, "enrollment"); n != 1 {
		t.Errorf("enrollment rows=%d want 1", n)
	}
	if n := countRows(t, db, "ledger_entry"); n != 1 {
		t.Errorf("ledger rows=%d want 1", n)
	}
}

// TestCreate_ConcurrentNeverExceedsCapacity verifies the capacity guard under
// concurrent writers: the count check and insert are one statement inside an
// immediate transaction, so racing creates serialize on the write lock.
// PRE: sport with capacity 2, eight concurrent creates.
// POST: exactly two succeed; row counts match; the rest get ErrCapacityExceeded.
func TestCreate_ConcurrentNeverExceedsCapacity(t *testing.T) {
	db := openTestDB(t)
	seedSport(t, db, "Tennis", 2)
	store := NewSQLiteStore(db)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, fee := tennisPair(fmt.Sprintf("e%d", i), fmt.Sprintf("4055%04d", i))
			_, err := store.Create(context.Background(), e, fee)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrCapacityExceeded):
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 2 || rejected != attempts-2 {
		t.Errorf("succeeded=%d rejected=%d want 2 and %d", succeeded, rejected, attempts-2)
	}
	if n := countRows(t, db, "enrollment"); n != 2 {
		t.Errorf("enrollment rows=%d want 2", n)
	}
	if n := countRows(t, db, "ledger_entry"); n != 2 {
		t.Errorf("ledger rows=%d want 2", n)
	}
}

// TestExistsAndCount verifies the read helpers against real rows.
// PRE: one enrollment persisted.
// POST: Exists true for the pair, false otherwise; Count per sport.
func TestExistsAndCount(t *testing.T) {
	db := openTestDB(t)
	seedSport(t, db, "Tennis", 8)
	store := NewSQLiteStore(db)

	e, fee := tennisPair("e1", "40555666")
	if _, err := store.Create(context.Background(), e, fee); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := store.Exists(context.Background(), "40555666", "Tennis")
	if err != nil || !ok {
		t.Errorf("Exists=(%v, %v) want (true, nil)", ok, err)
	}
	ok, err = store.Exists(context.Background(), "40555667", "Tennis")
	if err != nil || ok {
		t.Errorf("Exists=(%v, %v) want (false, nil)", ok, err)
	}
	n, err := store.Count(context.Background(), "Tennis")
	if err != nil || n != 1 {
		t.Errorf("Count=(%d, %v) want (1, nil)", n, err)
	}
}
