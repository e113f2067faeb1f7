package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// DefaultSlowQueryMs is the default threshold for slow query warnings.
const DefaultSlowQueryMs = 50

// LoggingDB wraps a *sql.DB to log slow queries.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type LoggingDB struct {
	db        *sql.DB
	threshold float64
}

// Compile-time check that *LoggingDB satisfies SQLDB.
var _ SQLDB = (*LoggingDB)(nil)

// NewLoggingDB wraps a *sql.DB with slow-query logging.
// PRE: db is a valid database connection
// POST: Returns a LoggingDB that warns on queries over the threshold
func NewLoggingDB(db *sql.DB) *LoggingDB {
	ms := DefaultSlowQueryMs
	if v := os.Getenv("CLUBHOUSE_SLOW_QUERY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return &LoggingDB{db: db, threshold: float64(ms)}
}

// RawDB returns the underlying *sql.DB (needed for schema init and pool config).
func (l *LoggingDB) RawDB() *sql.DB {
	return l.db
}

func (l *LoggingDB) logQuery(op string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	if durationMs >= l.threshold {
		slog.Warn("slow_query", "op", op, "duration_ms", durationMs)
	} else {
		slog.Debug("query", "op", op, "duration_ms", durationMs)
	}
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (l *LoggingDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := l.db.ExecContext(ctx, query, args...)
	l.logQuery("ExecContext", start)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (l *LoggingDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := l.db.QueryContext(ctx, query, args...)
	l.logQuery("QueryContext", start)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (l *LoggingDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := l.db.QueryRowContext(ctx, query, args...)
	l.logQuery("QueryRowContext", start)
	return row
}

// BeginTx wraps sql.DB.BeginTx with timing.
func (l *LoggingDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := l.db.BeginTx(ctx, opts)
	l.logQuery("BeginTx", start)
	return tx, err
}
