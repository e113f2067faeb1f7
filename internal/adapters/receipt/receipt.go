// Package receipt renders payment tickets. Every ticket is written as a text
// file; when a sender and a recipient address are available an HTML copy goes
// out by email as well. Both paths are best effort from the caller's point of
// view: the payment itself is already committed.
package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"clubhouse/internal/adapters/email"
	domain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
)

// AddressBook resolves a recipient email address for a DNI. Guests carry no
// address; person.ErrNotFound means the ticket stays file-only.
type AddressBook interface {
	EmailFor(ctx context.Context, dni string) (string, error)
}

// Issuer writes ticket files into a directory and optionally emails them.
type Issuer struct {
	dir       string
	sender    email.Sender
	addresses AddressBook
	clubName  string
}

// NewIssuer creates an Issuer writing into dir. sender and addresses may be
// nil; tickets are then file-only.
// PRE: dir exists and is writable
// POST: Returns a ready-to-use issuer
func NewIssuer(dir, clubName string, sender email.Sender, addresses AddressBook) *Issuer {
	return &Issuer{dir: dir, sender: sender, addresses: addresses, clubName: clubName}
}

// Issue renders the ticket for a ledger entry.
// PRE: e is a committed ledger entry with a non-zero ID
// POST: A ticket file exists under dir; an email copy was attempted when
// possible
func (i *Issuer) Issue(ctx context.Context, e domain.Entry) error {
	text := i.renderText(e)
	name := ticketFileName(e)
	path := filepath.Join(i.dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write ticket %s: %w", name, err)
	}
	slog.Info("ticket_written", "path", path, "ledger_id", e.ID)

	i.emailCopy(ctx, e)
	return nil
}

func (i *Issuer) emailCopy(ctx context.Context, e domain.Entry) {
	if i.sender == nil || i.addresses == nil {
		return
	}
	to, err := i.addresses.EmailFor(ctx, e.DNI)
	if err != nil {
		if !errors.Is(err, person.ErrNotFound) {
			slog.Error("ticket_email_lookup_failed", "error", err, "dni", e.DNI)
		}
		return
	}
	html, err := i.renderHTML(e)
	if err != nil {
		slog.Error("ticket_render_failed", "error", err, "ledger_id", e.ID)
		return
	}
	_, err = i.sender.Send(ctx, email.SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("%s payment receipt #%d", i.clubName, e.ID),
		HTML:    html,
	})
	if err != nil {
		slog.Error("ticket_email_failed", "error", err, "ledger_id", e.ID)
	}
}

// renderText produces the plain ticket written to disk.
func (i *Issuer) renderText(e domain.Entry) string {
	var b strings.Builder
	line := strings.Repeat("-", 38)
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "%s\n", centerLine(i.clubName, 38))
	fmt.Fprintf(&b, "%s\n", centerLine("PAYMENT RECEIPT", 38))
	fmt.Fprintf(&b, "%s\n", line)
	fmt.Fprintf(&b, "Receipt no.:  %d\n", e.ID)
	fmt.Fprintf(&b, "DNI:          %s\n", e.DNI)
	fmt.Fprintf(&b, "Category:     %s\n", e.PersonKind)
	fmt.Fprintf(&b, "Concept:      %s\n", e.Kind)
	fmt.Fprintf(&b, "Amount:       $%s\n", domain.FormatAmount(e.AmountCents))
	fmt.Fprintf(&b, "Paid by:      %s\n", e.Method)
	fmt.Fprintf(&b, "Payment date: %s\n", e.PaymentDate.Format("02/01/2006"))
	fmt.Fprintf(&b, "Valid until:  %s\n", e.DueDate.Format("02/01/2006"))
	fmt.Fprintf(&b, "%s\n", line)
	return b.String()
}

// renderHTML converts the markdown form of the ticket for the email copy.
func (i *Issuer) renderHTML(e domain.Entry) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", i.clubName)
	fmt.Fprintf(&md, "## Payment receipt #%d\n\n", e.ID)
	fmt.Fprintf(&md, "| | |\n|---|---|\n")
	fmt.Fprintf(&md, "| DNI | %s |\n", e.DNI)
	fmt.Fprintf(&md, "| Category | %s |\n", e.PersonKind)
	fmt.Fprintf(&md, "| Concept | %s |\n", e.Kind)
	fmt.Fprintf(&md, "| Amount | $%s |\n", domain.FormatAmount(e.AmountCents))
	fmt.Fprintf(&md, "| Paid by | %s |\n", e.Method)
	fmt.Fprintf(&md, "| Payment date | %s |\n", e.PaymentDate.Format("02/01/2006"))
	fmt.Fprintf(&md, "| Valid until | %s |\n", e.DueDate.Format("02/01/2006"))

	var out bytes.Buffer
	if err := goldmark.Convert([]byte(md.String()), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// ticketFileName builds a filesystem-safe name from the entry identity.
func ticketFileName(e domain.Entry) string {
	kind := strings.ToLower(e.Kind)
	var b strings.Builder
	for _, r := range kind {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			if n := b.Len(); n > 0 && b.String()[n-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return fmt.Sprintf("ticket_%s_%s_%d.txt", e.DNI, strings.Trim(b.String(), "_"), e.ID)
}

func centerLine(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
