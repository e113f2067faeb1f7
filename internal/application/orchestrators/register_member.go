package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ledgerDomain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
	"clubhouse/internal/validation"
)

// MemberWriter persists a member plus their social fee entry atomically.
type MemberWriter interface {
	CreateMemberWithFee(ctx context.Context, m person.Member, fee ledgerDomain.Entry) (int64, error)
}

// RegisterMemberInput carries input for member registration.
type RegisterMemberInput struct {
	DNI            string
	FirstName      string
	LastName       string
	Address        string
	Phone          string
	Email          string
	RegisteredAt   time.Time
	SocialFeeCents int64
	PaymentMethod  string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	People   MemberWriter
	Receipts ReceiptIssuer
}

// RegisterMemberResult returns the member and the social fee entry.
type RegisterMemberResult struct {
	Member person.Member
	Entry  ledgerDomain.Entry
}

// ExecuteRegisterMember registers a member and records the social fee as one
// atomic pair: the member row and the "Social Fee" ledger entry land together
// or not at all.
// PRE: input fields are populated
// POST: Member and entry persisted, receipt issued; or a distinguishable error
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (RegisterMemberResult, error) {
	if err := validateMemberFields(input); err != nil {
		return RegisterMemberResult{}, err
	}
	if !ledgerDomain.ValidMethod(input.PaymentMethod) {
		return RegisterMemberResult{}, ledgerDomain.ErrInvalidPaymentMethod
	}

	m := person.Member{
		DNI:            input.DNI,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Address:        input.Address,
		Phone:          input.Phone,
		Email:          input.Email,
		RegisteredAt:   input.RegisteredAt,
		SocialFeeCents: input.SocialFeeCents,
	}
	entry := ledgerDomain.Entry{
		DNI:         m.DNI,
		AmountCents: m.SocialFeeCents,
		Kind:        ledgerDomain.KindSocialFee,
		Method:      input.PaymentMethod,
		PaymentDate: m.RegisteredAt,
		DueDate:     m.SocialFeeDueDate(),
		PersonKind:  person.KindMember,
	}

	entryID, err := deps.People.CreateMemberWithFee(ctx, m, entry)
	if err != nil {
		return RegisterMemberResult{}, err
	}
	entry.ID = entryID

	slog.Info("membership_event",
		"event", "member_registered",
		"dni", m.DNI,
		"social_fee_cents", m.SocialFeeCents,
	)

	issueReceipt(ctx, deps.Receipts, entry)

	return RegisterMemberResult{Member: m, Entry: entry}, nil
}

func validateMemberFields(input RegisterMemberInput) error {
	switch {
	case !validation.IsValidDNI(input.DNI):
		return fmt.Errorf("%w: DNI must be 7 or 8 digits", ErrValidation)
	case !validation.IsValidName(input.FirstName):
		return fmt.Errorf("%w: first name", ErrValidation)
	case !validation.IsValidName(input.LastName):
		return fmt.Errorf("%w: last name", ErrValidation)
	case !validation.IsValidAddress(input.Address):
		return fmt.Errorf("%w: address", ErrValidation)
	case !validation.IsValidPhone(input.Phone):
		return fmt.Errorf("%w: phone", ErrValidation)
	case !validation.IsValidEmail(input.Email):
		return fmt.Errorf("%w: email", ErrValidation)
	case input.RegisteredAt.IsZero():
		return fmt.Errorf("%w: registration date", ErrValidation)
	case input.SocialFeeCents <= 0:
		return fmt.Errorf("%w: social fee must be positive", ErrValidation)
	}
	return nil
}
