package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"clubhouse/internal/domain/person"
	"clubhouse/internal/validation"
)

// GuestWriter persists guests with the sponsor cap enforced atomically.
type GuestWriter interface {
	CreateGuest(ctx context.Context, g person.Guest) error
}

// RegisterGuestInput carries input for guest registration.
type RegisterGuestInput struct {
	DNI        string
	FirstName  string
	LastName   string
	SponsorDNI string
}

// RegisterGuestDeps holds dependencies for RegisterGuest.
type RegisterGuestDeps struct {
	People GuestWriter
}

// ExecuteRegisterGuest registers a guest under a sponsoring member. The
// sponsor must exist and may carry at most three live guests; both rules are
// enforced inside the store transaction.
// PRE: input fields are populated
// POST: Guest persisted, or SponsorNotFound / GuestCapExceeded / DuplicateIdentity
func ExecuteRegisterGuest(ctx context.Context, input RegisterGuestInput, deps RegisterGuestDeps) (person.Guest, error) {
	switch {
	case !validation.IsValidDNI(input.SponsorDNI):
		return person.Guest{}, fmt.Errorf("%w: sponsor DNI must be 7 or 8 digits", ErrValidation)
	case !validation.IsValidDNI(input.DNI):
		return person.Guest{}, fmt.Errorf("%w: DNI must be 7 or 8 digits", ErrValidation)
	case !validation.IsValidName(input.FirstName):
		return person.Guest{}, fmt.Errorf("%w: first name", ErrValidation)
	case !validation.IsValidName(input.LastName):
		return person.Guest{}, fmt.Errorf("%w: last name", ErrValidation)
	}

	g := person.Guest{
		DNI:        input.DNI,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		SponsorDNI: input.SponsorDNI,
	}
	if err := deps.People.CreateGuest(ctx, g); err != nil {
		return person.Guest{}, err
	}

	slog.Info("membership_event", "event", "guest_registered", "dni", g.DNI, "sponsor", g.SponsorDNI)
	return g, nil
}
