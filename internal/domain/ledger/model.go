package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Payment methods accepted by the club.
const (
	MethodCash     = "Cash"
	MethodDebit    = "Debit"
	MethodCredit   = "Credit"
	MethodTransfer = "Transfer"
)

// KindSocialFee is the payment kind written by member registration. Sport
// fees use the "Fee: <sport>" form produced by SportFeeKind.
const KindSocialFee = "Social Fee"

// DueTermDays is the payment term applied to every ledger entry.
const DueTermDays = 30

// Domain errors
var (
	ErrInvalidPaymentMethod = errors.New("payment method must be Cash, Debit, Credit or Transfer")
	ErrInvalidPeriod        = errors.New("period must be in MM-YYYY format")
)

// Entry is an immutable payment fact. Entries are only ever appended; all
// reporting derives from them, never from the person or enrollment records.
type Entry struct {
	ID          int64
	DNI         string
	AmountCents int64
	Kind        string // "Social Fee" or "Fee: <sport>"
	Method      string
	PaymentDate time.Time
	DueDate     time.Time
	PersonKind  string
}

// SportFeeKind returns the ledger kind for a sport fee payment.
func SportFeeKind(sportName string) string {
	return "Fee: " + sportName
}

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodDebit, MethodCredit, MethodTransfer:
		return true
	}
	return false
}

// DueDate returns the due date for a payment made on the given date.
func DueDate(paymentDate time.Time) time.Time {
	return paymentDate.AddDate(0, 0, DueTermDays)
}

// Period is an inclusive date range covering one calendar month.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod resolves an "MM-YYYY" token into the first and last day of that
// month. The month end is found by adding 32 days to the first of the month
// and truncating back, so month lengths and leap years need no table.
// PRE: token is in MM-YYYY format
// POST: Start is the 1st, End the last day of the month, both at midnight UTC
func ParsePeriod(token string) (Period, error) {
	t, err := time.Parse("01-2006", token)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, token)
	}
	return periodOf(t), nil
}

// CurrentPeriod returns the period for the month containing now.
func CurrentPeriod(now time.Time) Period {
	return periodOf(now)
}

func periodOf(t time.Time) Period {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 0, 32)
	last := time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	return Period{Start: first, End: last}
}

// FormatAmount renders cents as a decimal string with two places, the form
// used on tickets and reports.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
