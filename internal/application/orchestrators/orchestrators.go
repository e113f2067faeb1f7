// Package orchestrators holds the application use cases. Each use case is a
// single ExecuteXxx function taking an input struct and a deps struct of
// narrow store interfaces, so tests can pass map-backed fakes.
package orchestrators

import (
	"context"
	"errors"

	ledgerDomain "clubhouse/internal/domain/ledger"
)

// ErrValidation marks a malformed input field. Callers match it with
// errors.Is; the wrapped message names the offending field.
var ErrValidation = errors.New("invalid field")

// ReceiptIssuer renders a payment receipt for a ledger entry. Issuing is an
// observable side effect, not part of any transaction: a failed receipt is
// logged and never rolls back the payment.
type ReceiptIssuer interface {
	Issue(ctx context.Context, e ledgerDomain.Entry) error
}
