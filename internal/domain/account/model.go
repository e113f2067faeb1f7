package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role constants
const (
	RoleAdmin     = "admin"
	RoleTreasurer = "treasurer"
	RoleClerk     = "clerk"
)

// Capabilities gated by the static permission table.
const (
	PermInstructors = "instructors"
	PermCatalog     = "catalog"
	PermFees        = "fees_and_members"
	PermReporting   = "reporting"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleTreasurer, RoleClerk}

// permissions is the static authorization table keyed by role. It is data,
// not control flow: handlers ask HasPermission and nothing else.
var permissions = map[string]map[string]bool{
	RoleAdmin: {
		PermInstructors: true,
		PermCatalog:     true,
		PermFees:        true,
		PermReporting:   true,
	},
	RoleTreasurer: {
		PermFees:      true,
		PermReporting: true,
	},
	RoleClerk: {
		PermFees: true,
	},
}

// Domain errors
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrInvalidRole      = errors.New("role must be one of: admin, treasurer, clerk")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Account is an operator login for the administrative surface.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Validate checks if the Account has valid data.
// PRE: Account struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return ErrEmptyUsername
	}
	if !isValidRole(a.Role) {
		return ErrInvalidRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 12 characters
// POST: PasswordHash is set to bcrypt hash
func (a *Account) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 12 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Account fields are not mutated
func (a *Account) CheckPassword(plaintext string) error {
	if a.PasswordHash == "" {
		return ErrWrongPassword
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plaintext)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// HasPermission reports whether a role grants the given capability.
// PRE: none
// POST: Returns false for unknown roles or capabilities
func HasPermission(role, capability string) bool {
	return permissions[role][capability]
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
