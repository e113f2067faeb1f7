package person

import (
	"context"

	ledgerDomain "clubhouse/internal/domain/ledger"
	domain "clubhouse/internal/domain/person"
)

// Store persists the three person registers. Registration methods that also
// write money facts run as a single transaction: the member row and its
// social fee entry land together or not at all.
type Store interface {
	GetMember(ctx context.Context, dni string) (domain.Member, error)
	GetGuest(ctx context.Context, dni string) (domain.Guest, error)
	GetNonMember(ctx context.Context, dni string) (domain.NonMember, error)

	CreateMemberWithFee(ctx context.Context, m domain.Member, fee ledgerDomain.Entry) (int64, error)
	CreateGuest(ctx context.Context, g domain.Guest) error
	CreateNonMember(ctx context.Context, n domain.NonMember) error

	UpdateMember(ctx context.Context, m domain.Member) error
	DeleteMember(ctx context.Context, dni string) error
	DeleteGuest(ctx context.Context, dni string) error
	DeleteNonMember(ctx context.Context, dni string) error

	ListMembers(ctx context.Context) ([]domain.Member, error)
	ListGuests(ctx context.Context) ([]domain.Guest, error)
	ListNonMembers(ctx context.Context) ([]domain.NonMember, error)
	GuestCount(ctx context.Context, sponsorDNI string) (int, error)
}
