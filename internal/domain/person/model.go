package person

import (
	"errors"
	"time"
)

// Kind identifies which register a person belongs to. Classification order
// (member, then guest, then non-member) is fixed: a DNI present in more than
// one register always resolves to the first match.
const (
	KindMember    = "Member"
	KindGuest     = "Guest"
	KindNonMember = "NonMember"
	KindUnknown   = "Unknown"
)

// MaxGuestsPerMember caps the number of live guests a member may sponsor.
const MaxGuestsPerMember = 3

// SocialFeeTermDays is the payment term for the social fee.
const SocialFeeTermDays = 30

// Domain errors
var (
	ErrDuplicateIdentity = errors.New("identity number is already registered")
	ErrSponsorNotFound   = errors.New("sponsoring member not found")
	ErrGuestCapExceeded  = errors.New("member already sponsors the maximum number of guests")
	ErrNotFound          = errors.New("person not found")
)

// Member is a full club member. Registration carries a one-off social fee
// due 30 days after the registration date.
type Member struct {
	DNI            string
	FirstName      string
	LastName       string
	Address        string
	Phone          string
	Email          string
	RegisteredAt   time.Time
	SocialFeeCents int64
}

// SocialFeeDueDate returns the due date for the registration social fee.
// INVARIANT: RegisteredAt is not mutated
func (m *Member) SocialFeeDueDate() time.Time {
	return m.RegisteredAt.AddDate(0, 0, SocialFeeTermDays)
}

// Guest is sponsored by a member and has no contact details of its own.
type Guest struct {
	DNI        string
	FirstName  string
	LastName   string
	SponsorDNI string
}

// NonMember pays full price and keeps only contact details.
type NonMember struct {
	DNI       string
	FirstName string
	LastName  string
	Phone     string
	Email     string
}
