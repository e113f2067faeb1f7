package instructor

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrDuplicateDNI = errors.New("an instructor with this DNI already exists")
	ErrNotFound     = errors.New("instructor not found")
	ErrEmptySport   = errors.New("instructor must be assigned a sport")
)

// Instructor is a roster record for a class teacher, keyed by DNI.
type Instructor struct {
	DNI       string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	StartDate time.Time
	Sport     string
}

// Validate checks if the Instructor has valid data.
// PRE: Instructor struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Instructor) Validate() error {
	if strings.TrimSpace(i.DNI) == "" {
		return errors.New("instructor DNI cannot be empty")
	}
	if strings.TrimSpace(i.FirstName) == "" || strings.TrimSpace(i.LastName) == "" {
		return errors.New("instructor name cannot be empty")
	}
	if strings.TrimSpace(i.Sport) == "" {
		return ErrEmptySport
	}
	return nil
}
