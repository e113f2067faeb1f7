package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"clubhouse/internal/domain/person"
	"clubhouse/internal/validation"
)

// NonMemberWriter persists non-member records.
type NonMemberWriter interface {
	CreateNonMember(ctx context.Context, n person.NonMember) error
}

// RegisterNonMemberInput carries input for non-member registration.
type RegisterNonMemberInput struct {
	DNI       string
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// RegisterNonMemberDeps holds dependencies for RegisterNonMember.
type RegisterNonMemberDeps struct {
	People NonMemberWriter
}

// ExecuteRegisterNonMember records a non-member's contact details.
// Registration is optional for paying a sport fee; it only keeps the person
// on file.
// PRE: input fields are populated
// POST: Non-member persisted, or ValidationError / DuplicateIdentity
func ExecuteRegisterNonMember(ctx context.Context, input RegisterNonMemberInput, deps RegisterNonMemberDeps) (person.NonMember, error) {
	switch {
	case !validation.IsValidDNI(input.DNI):
		return person.NonMember{}, fmt.Errorf("%w: DNI must be 7 or 8 digits", ErrValidation)
	case !validation.IsValidName(input.FirstName):
		return person.NonMember{}, fmt.Errorf("%w: first name", ErrValidation)
	case !validation.IsValidName(input.LastName):
		return person.NonMember{}, fmt.Errorf("%w: last name", ErrValidation)
	case !validation.IsValidPhone(input.Phone):
		return person.NonMember{}, fmt.Errorf("%w: phone", ErrValidation)
	case !validation.IsValidEmail(input.Email):
		return person.NonMember{}, fmt.Errorf("%w: email", ErrValidation)
	}

	n := person.NonMember{
		DNI:       input.DNI,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Email:     input.Email,
	}
	if err := deps.People.CreateNonMember(ctx, n); err != nil {
		return person.NonMember{}, err
	}

	slog.Info("membership_event", "event", "non_member_registered", "dni", n.DNI)
	return n, nil
}
