// Package validation holds the pure field predicates consumed by the
// registration orchestrators. Format rules live here, business rules do not.
package validation

import (
	"regexp"
	"strings"
	"time"
)

var (
	dniRe   = regexp.MustCompile(`^[0-9]{7,8}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ ]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{7,}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsValidDNI reports whether s is a 7 or 8 digit identity number.
func IsValidDNI(s string) bool {
	return dniRe.MatchString(s)
}

// IsValidName reports whether s is a personal name of at least two letters.
// Accented characters and ñ are allowed.
func IsValidName(s string) bool {
	s = strings.TrimSpace(s)
	return len([]rune(s)) >= 2 && nameRe.MatchString(s)
}

// IsValidPhone reports whether s is a phone number of at least 7 digits.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidAddress reports whether s is a street address of at least 5 characters.
func IsValidAddress(s string) bool {
	return len(strings.TrimSpace(s)) >= 5
}

// ParseDate parses a dd/mm/yyyy date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
