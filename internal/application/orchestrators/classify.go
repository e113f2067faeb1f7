package orchestrators

import (
	"context"
	"errors"

	"clubhouse/internal/domain/person"
)

// PersonReader is the lookup surface needed to classify a DNI.
type PersonReader interface {
	GetMember(ctx context.Context, dni string) (person.Member, error)
	GetGuest(ctx context.Context, dni string) (person.Guest, error)
	GetNonMember(ctx context.Context, dni string) (person.NonMember, error)
}

// Classify resolves which register a DNI belongs to. The lookup order is
// fixed (member, then guest, then non-member) so a DNI present in more than
// one register resolves deterministically.
// PRE: dni is non-empty
// POST: Returns one of the person.Kind constants; KindUnknown if absent
// from all three registers
func Classify(ctx context.Context, dni string, people PersonReader) (string, error) {
	if _, err := people.GetMember(ctx, dni); err == nil {
		return person.KindMember, nil
	} else if !errors.Is(err, person.ErrNotFound) {
		return "", err
	}
	if _, err := people.GetGuest(ctx, dni); err == nil {
		return person.KindGuest, nil
	} else if !errors.Is(err, person.ErrNotFound) {
		return "", err
	}
	if _, err := people.GetNonMember(ctx, dni); err == nil {
		return person.KindNonMember, nil
	} else if !errors.Is(err, person.ErrNotFound) {
		return "", err
	}
	return person.KindUnknown, nil
}
