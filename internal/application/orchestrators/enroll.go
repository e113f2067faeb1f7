package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	enrollmentDomain "clubhouse/internal/domain/enrollment"
	ledgerDomain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
	sportDomain "clubhouse/internal/domain/sport"
)

// SportReader is the catalog lookup needed to enroll.
type SportReader interface {
	Get(ctx context.Context, name string) (sportDomain.Sport, error)
}

// EnrollmentWriter persists the enrollment plus its fee entry atomically.
// Exists supports the early duplicate check; Create re-checks under the
// transaction, so the early answer going stale is harmless.
type EnrollmentWriter interface {
	Create(ctx context.Context, e enrollmentDomain.Enrollment, fee ledgerDomain.Entry) (int64, error)
	Exists(ctx context.Context, dni, sportName string) (bool, error)
}

// EnrollInput carries input for the enrollment use case.
type EnrollInput struct {
	DNI           string
	SportName     string
	PaymentMethod string
	PaymentDate   time.Time
}

// EnrollDeps holds dependencies for Enroll.
type EnrollDeps struct {
	People      PersonReader
	Sports      SportReader
	Enrollments EnrollmentWriter
	Discounts   enrollmentDomain.DiscountTable
	Receipts    ReceiptIssuer
}

// EnrollResult returns both records created by a successful enrollment.
type EnrollResult struct {
	Enrollment enrollmentDomain.Enrollment
	Entry      ledgerDomain.Entry
}

// ExecuteEnroll admits a person into a sport class and records the fee paid.
// Anyone may pay: a DNI unknown to every register is charged as a non-member,
// no prior registration required.
// PRE: input fields are populated; PaymentDate is the charge date
// POST: Exactly one enrollment and one ledger entry exist for the pair, or a
// domain error identifies the rejection and nothing was written
func ExecuteEnroll(ctx context.Context, input EnrollInput, deps EnrollDeps) (EnrollResult, error) {
	kind, err := Classify(ctx, input.DNI, deps.People)
	if err != nil {
		return EnrollResult{}, err
	}
	if kind == person.KindUnknown {
		kind = person.KindNonMember
	}

	sp, err := deps.Sports.Get(ctx, input.SportName)
	if err != nil {
		return EnrollResult{}, err
	}

	// Duplicate enrollment is reported before any validation of the payment
	// itself: the caller learns the pair is taken even when the method is bad.
	enrolled, err := deps.Enrollments.Exists(ctx, input.DNI, sp.Name)
	if err != nil {
		return EnrollResult{}, err
	}
	if enrolled {
		return EnrollResult{}, enrollmentDomain.ErrAlreadyEnrolled
	}

	if !ledgerDomain.ValidMethod(input.PaymentMethod) {
		return EnrollResult{}, ledgerDomain.ErrInvalidPaymentMethod
	}

	amount := enrollmentDomain.DiscountedAmount(sp.FeeCents, deps.Discounts.Percent(kind))

	enr := enrollmentDomain.Enrollment{
		ID:          uuid.New().String(),
		DNI:         input.DNI,
		SportName:   sp.Name,
		AmountCents: amount,
		EnrolledAt:  input.PaymentDate,
	}
	entry := ledgerDomain.Entry{
		DNI:         input.DNI,
		AmountCents: amount,
		Kind:        ledgerDomain.SportFeeKind(sp.Name),
		Method:      input.PaymentMethod,
		PaymentDate: input.PaymentDate,
		DueDate:     ledgerDomain.DueDate(input.PaymentDate),
		PersonKind:  kind,
	}

	entryID, err := deps.Enrollments.Create(ctx, enr, entry)
	if err != nil {
		return EnrollResult{}, err
	}
	entry.ID = entryID

	slog.Info("enrollment_event",
		"event", "enrolled",
		"dni", input.DNI,
		"sport", sp.Name,
		"person_kind", kind,
		"amount_cents", amount,
		"method", input.PaymentMethod,
	)

	issueReceipt(ctx, deps.Receipts, entry)

	return EnrollResult{Enrollment: enr, Entry: entry}, nil
}

// issueReceipt emits a receipt outside the transactional guarantee.
func issueReceipt(ctx context.Context, issuer ReceiptIssuer, entry ledgerDomain.Entry) {
	if issuer == nil {
		return
	}
	if err := issuer.Issue(ctx, entry); err != nil {
		slog.Error("receipt_failed", "error", err, "ledger_id", entry.ID, "dni", entry.DNI)
	}
}
