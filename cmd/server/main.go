package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "clubhouse/internal/adapters/email"
	web "clubhouse/internal/adapters/http"
	"clubhouse/internal/adapters/receipt"
	"clubhouse/internal/adapters/storage"
	accountStore "clubhouse/internal/adapters/storage/account"
	enrollmentStore "clubhouse/internal/adapters/storage/enrollment"
	instructorStore "clubhouse/internal/adapters/storage/instructor"
	ledgerStore "clubhouse/internal/adapters/storage/ledger"
	personStore "clubhouse/internal/adapters/storage/person"
	sportStore "clubhouse/internal/adapters/storage/sport"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()

	// Initialize database with WAL mode, foreign keys, and busy timeout.
	// _txlock=immediate makes the guarded-insert transactions take the write
	// lock at BeginTx, so concurrent writers queue on busy_timeout instead of
	// failing the deferred-to-write upgrade with SQLITE_BUSY.
	dsn := cfg.DBPath + "?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Wrap DB with slow query logging
	loggedDB := storage.NewLoggingDB(db)

	// Create store instances
	people := personStore.NewSQLiteStore(loggedDB)
	sports := sportStore.NewSQLiteStore(loggedDB)
	accounts := accountStore.NewSQLiteStore(loggedDB)
	stores := &web.Stores{
		AccountStore:    accounts,
		PersonStore:     people,
		SportStore:      sports,
		EnrollmentStore: enrollmentStore.NewSQLiteStore(loggedDB),
		LedgerStore:     ledgerStore.NewSQLiteStore(loggedDB),
		InstructorStore: instructorStore.NewSQLiteStore(loggedDB),
	}

	// Seed default admin account if no accounts exist
	accountDeps := orchestrators.AccountDeps{Accounts: accounts}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword, accountDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed the starter catalog if none exists
	if err := orchestrators.ExecuteSeedSports(context.Background(), orchestrators.ConfigureSportDeps{Sports: sports}); err != nil {
		log.Fatalf("failed to seed sports: %v", err)
	}

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Env == "production" {
			log.Println("WARNING: CLUBHOUSE_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CLUBHOUSE_RESEND_KEY for real delivery)")
		}
	}

	// Ticket output directory and receipt issuer
	if err := os.MkdirAll(cfg.TicketDir, 0o755); err != nil {
		log.Fatalf("failed to create ticket directory: %v", err)
	}
	web.SetReceiptIssuer(receipt.NewIssuer(cfg.TicketDir, cfg.ClubName, sender, &receipt.RegisterAddressBook{People: people}))

	// Create HTTP handler with middleware
	mux := web.NewMux(stores)

	log.Printf("Clubhouse %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
