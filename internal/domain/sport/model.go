package sport

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("sport name cannot be empty")
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	ErrInvalidFee      = errors.New("fee cannot be negative")
	ErrNotFound        = errors.New("sport not found")
)

// Sport is a capacity-limited class in the club catalog, keyed by name.
// Configuration is upsert-with-overwrite: every field is replaced on
// reconfiguration, never merged.
type Sport struct {
	Name       string
	Days       string // weekly schedule, e.g. "Mon/Wed/Fri"
	Hours      string // e.g. "18:00-20:00"
	Instructor string
	Capacity   int
	FeeCents   int64
}

// Validate checks if the Sport has valid configuration.
// PRE: Sport struct is populated
// POST: Returns nil if valid, a domain error otherwise
func (s *Sport) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if s.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if s.FeeCents < 0 {
		return ErrInvalidFee
	}
	return nil
}
