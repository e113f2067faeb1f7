package receipt

import (
	"context"
	"errors"

	"clubhouse/internal/domain/person"
)

// PersonLookup is the register surface needed to resolve an address.
type PersonLookup interface {
	GetMember(ctx context.Context, dni string) (person.Member, error)
	GetNonMember(ctx context.Context, dni string) (person.NonMember, error)
}

// RegisterAddressBook resolves recipient addresses from the person registers.
// Guests carry no email, so their tickets stay file-only.
type RegisterAddressBook struct {
	People PersonLookup
}

// EmailFor implements AddressBook.
// POST: Returns a non-empty address or person.ErrNotFound
func (b *RegisterAddressBook) EmailFor(ctx context.Context, dni string) (string, error) {
	if m, err := b.People.GetMember(ctx, dni); err == nil {
		if m.Email == "" {
			return "", person.ErrNotFound
		}
		return m.Email, nil
	} else if !errors.Is(err, person.ErrNotFound) {
		return "", err
	}
	if n, err := b.People.GetNonMember(ctx, dni); err == nil {
		if n.Email == "" {
			return "", person.ErrNotFound
		}
		return n.Email, nil
	} else if !errors.Is(err, person.ErrNotFound) {
		return "", err
	}
	return "", person.ErrNotFound
}
