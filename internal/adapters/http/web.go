package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	accountStore "clubhouse/internal/adapters/storage/account"
	enrollmentStore "clubhouse/internal/adapters/storage/enrollment"
	instructorStore "clubhouse/internal/adapters/storage/instructor"
	ledgerStore "clubhouse/internal/adapters/storage/ledger"
	personStore "clubhouse/internal/adapters/storage/person"
	sportStore "clubhouse/internal/adapters/storage/sport"
	"clubhouse/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	PersonStore     personStore.Store
	SportStore      sportStore.Store
	EnrollmentStore enrollmentStore.Store
	LedgerStore     ledgerStore.Store
	InstructorStore instructorStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUBHOUSE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUBHOUSE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUBHOUSE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUBHOUSE_ENV") == "production" {
		log.Fatal("CLUBHOUSE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLUBHOUSE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global receipt issuer (set by SetReceiptIssuer)
var receiptIssuer orchestrators.ReceiptIssuer

// SetReceiptIssuer sets the receipt issuer used by payment handlers. A nil
// issuer disables tickets.
func SetReceiptIssuer(issuer orchestrators.ReceiptIssuer) {
	receiptIssuer = issuer
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CLUBHOUSE_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}
