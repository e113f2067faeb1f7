package enrollment

import (
	"errors"
	"time"

	"clubhouse/internal/domain/person"
)

// Domain errors
var (
	ErrAlreadyEnrolled  = errors.New("person is already enrolled in this sport")
	ErrCapacityExceeded = errors.New("sport class has no places left")
)

// Enrollment links a person to a sport class with the fee actually charged.
// At most one enrollment ever exists per (DNI, sport) pair, and the number of
// enrollments per sport never exceeds the sport's capacity.
type Enrollment struct {
	ID          string
	DNI         string
	SportName   string
	AmountCents int64
	EnrolledAt  time.Time
}

// DiscountTable maps person kind to a discount percentage. Business policy,
// kept as data so it can be tested and changed without touching control flow.
type DiscountTable map[string]int

// DefaultDiscounts is the club's standing policy: members and their guests
// pay 30% less, everyone else pays full price.
func DefaultDiscounts() DiscountTable {
	return DiscountTable{
		person.KindMember:    30,
		person.KindGuest:     30,
		person.KindNonMember: 0,
	}
}

// Percent returns the discount percentage for a person kind.
// PRE: none
// POST: Returns 0 for kinds absent from the table
func (t DiscountTable) Percent(kind string) int {
	return t[kind]
}

// DiscountedAmount applies a percentage discount to a fee in cents, rounding
// half-up to the nearest cent.
// PRE: 0 <= percent <= 100, feeCents >= 0
// POST: Returns feeCents * (100 - percent) / 100, half-up rounded
func DiscountedAmount(feeCents int64, percent int) int64 {
	return (feeCents*int64(100-percent) + 50) / 100
}
