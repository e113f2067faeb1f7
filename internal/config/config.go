// Package config loads runtime settings from a .env file and the process
// environment. Every key is prefixed CLUBHOUSE_ and has a development
// default; production deployments set the secrets explicitly.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Addr          string // listen address
	DBPath        string // SQLite database file
	Env           string // "development" or "production"
	ClubName      string // printed on tickets and reports
	TicketDir     string // directory for ticket text files
	AdminUser     string // seeded admin username
	AdminPassword string // seeded admin password
	ResendKey     string // empty disables email delivery
	EmailFrom     string // default From address for receipts
}

// Load reads .env (if present) and resolves the configuration.
// POST: Every field is non-empty except ResendKey
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	return Config{
		Addr:          envOrDefault("CLUBHOUSE_ADDR", ":8080"),
		DBPath:        envOrDefault("CLUBHOUSE_DB", "clubhouse.db"),
		Env:           envOrDefault("CLUBHOUSE_ENV", "development"),
		ClubName:      envOrDefault("CLUBHOUSE_NAME", "Club Deportivo"),
		TicketDir:     envOrDefault("CLUBHOUSE_TICKET_DIR", "tickets"),
		AdminUser:     envOrDefault("CLUBHOUSE_ADMIN_USER", "admin"),
		AdminPassword: envOrDefault("CLUBHOUSE_ADMIN_PASSWORD", "change-me-right-away"),
		ResendKey:     os.Getenv("CLUBHOUSE_RESEND_KEY"),
		EmailFrom:     envOrDefault("CLUBHOUSE_EMAIL_FROM", "Club Deportivo <noreply@clubhouse.example>"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
