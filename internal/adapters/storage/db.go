package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DateFormat is how dates are stored in sqlite TEXT columns.
const DateFormat = "2006-01-02"

// Querier is the read/write surface shared by *sql.DB and *sql.Tx. Store
// methods that may run inside a transaction accept this.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *LoggingDB satisfy this interface.
type SQLDB interface {
	Querier
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time checks.
var (
	_ SQLDB   = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS member (
		dni TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL,
		registered_at TEXT NOT NULL,
		social_fee_cents INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS guest (
		dni TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		sponsor_dni TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_guest_sponsor ON guest(sponsor_dni);

	CREATE TABLE IF NOT EXISTS non_member (
		dni TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sport (
		name TEXT PRIMARY KEY,
		days TEXT NOT NULL,
		hours TEXT NOT NULL,
		instructor TEXT NOT NULL,
		capacity INTEGER NOT NULL,
		fee_cents INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS enrollment (
		id TEXT PRIMARY KEY,
		dni TEXT NOT NULL,
		sport_name TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		enrolled_at TEXT NOT NULL,
		UNIQUE(dni, sport_name)
	);
	CREATE INDEX IF NOT EXISTS idx_enrollment_sport ON enrollment(sport_name);

	CREATE TABLE IF NOT EXISTS ledger_entry (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dni TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		kind TEXT NOT NULL,
		method TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		due_date TEXT NOT NULL,
		person_kind TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_payment_date ON ledger_entry(payment_date);

	CREATE TABLE IF NOT EXISTS instructor (
		dni TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		start_date TEXT NOT NULL,
		sport TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
