package orchestrators

import (
	"context"
	"log/slog"

	"clubhouse/internal/domain/person"
)

// PersonAdmin is the register surface the administration use cases need.
type PersonAdmin interface {
	PersonReader
	UpdateMember(ctx context.Context, m person.Member) error
	DeleteMember(ctx context.Context, dni string) error
	DeleteGuest(ctx context.Context, dni string) error
	DeleteNonMember(ctx context.Context, dni string) error
	ListMembers(ctx context.Context) ([]person.Member, error)
	ListGuests(ctx context.Context) ([]person.Guest, error)
	ListNonMembers(ctx context.Context) ([]person.NonMember, error)
}

// PeopleDeps holds the person register for the administration use cases.
type PeopleDeps struct {
	People PersonAdmin
}

// ExecuteUpdateMember replaces a member's contact details. The DNI and the
// social fee already charged are not editable here.
// PRE: m.DNI identifies an existing member
// POST: Member row updated, or person.ErrNotFound
func ExecuteUpdateMember(ctx context.Context, m person.Member, deps PeopleDeps) error {
	if err := validateMemberFields(RegisterMemberInput{
		DNI:            m.DNI,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Address:        m.Address,
		Phone:          m.Phone,
		Email:          m.Email,
		RegisteredAt:   m.RegisteredAt,
		SocialFeeCents: m.SocialFeeCents,
	}); err != nil {
		return err
	}
	if err := deps.People.UpdateMember(ctx, m); err != nil {
		return err
	}
	slog.Info("membership_event", "event", "member_updated", "dni", m.DNI)
	return nil
}

// ExecuteRemovePerson drops a record from the register the DNI belongs to.
// Ledger entries and enrollments are untouched: money facts outlive the
// people who paid them.
// POST: The record is gone from its register, or person.ErrNotFound
func ExecuteRemovePerson(ctx context.Context, dni string, deps PeopleDeps) error {
	kind, err := Classify(ctx, dni, deps.People)
	if err != nil {
		return err
	}
	switch kind {
	case person.KindMember:
		err = deps.People.DeleteMember(ctx, dni)
	case person.KindGuest:
		err = deps.People.DeleteGuest(ctx, dni)
	case person.KindNonMember:
		err = deps.People.DeleteNonMember(ctx, dni)
	default:
		return person.ErrNotFound
	}
	if err != nil {
		return err
	}
	slog.Info("membership_event", "event", "person_removed", "dni", dni, "person_kind", kind)
	return nil
}

// ExecuteListMembers returns the member register ordered by DNI.
func ExecuteListMembers(ctx context.Context, deps PeopleDeps) ([]person.Member, error) {
	return deps.People.ListMembers(ctx)
}

// ExecuteListGuests returns the guest register ordered by DNI.
func ExecuteListGuests(ctx context.Context, deps PeopleDeps) ([]person.Guest, error) {
	return deps.People.ListGuests(ctx)
}

// ExecuteListNonMembers returns the non-member register ordered by DNI.
func ExecuteListNonMembers(ctx context.Context, deps PeopleDeps) ([]person.NonMember, error) {
	return deps.People.ListNonMembers(ctx)
}
