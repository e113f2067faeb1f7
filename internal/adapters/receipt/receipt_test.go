package receipt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clubhouse/internal/adapters/email"
	domain "clubhouse/internal/domain/ledger"
	"clubhouse/internal/domain/person"
)

func sampleEntry() domain.Entry {
	return domain.Entry{
		ID:          7,
		DNI:         "30111222",
		AmountCents: 14000,
		Kind:        "Fee: Tennis",
		Method:      domain.MethodCash,
		PaymentDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
		PersonKind:  person.KindMember,
	}
}

// recordingSender implements email.Sender and remembers the last request.
type recordingSender struct {
	sent []email.SendRequest
}

// Send implements email.Sender.
func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "test-1", SentAt: time.Now()}, nil
}

// staticAddressBook implements AddressBook over a map.
type staticAddressBook struct {
	byDNI map[string]string
}

// EmailFor implements AddressBook.
func (b *staticAddressBook) EmailFor(_ context.Context, dni string) (string, error) {
	addr, ok := b.byDNI[dni]
	if !ok {
		return "", person.ErrNotFound
	}
	return addr, nil
}

// TestIssue_WritesTicketFile verifies the file ticket.
// PRE: temp directory, no sender.
// POST: one ticket file containing the amount, method and dates.
func TestIssue_WritesTicketFile(t *testing.T) {
	dir := t.TempDir()
	issuer := NewIssuer(dir, "Club Deportivo", nil, nil)

	if err := issuer.Issue(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(dir, "ticket_30111222_fee_tennis_7.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ticket file not written: %v", err)
	}
	text := string(data)
	for _, want := range []string{"PAYMENT RECEIPT", "$140.00", "Cash", "15/01/2025", "14/02/2025", "Fee: Tennis", "Member"} {
		if !strings.Contains(text, want) {
			t.Errorf("ticket missing %q:\n%s", want, text)
		}
	}
}

// TestIssue_EmailsWhenAddressKnown verifies the email copy.
// PRE: sender and address book resolve the DNI.
// POST: one email with an HTML table carrying the amount.
func TestIssue_EmailsWhenAddressKnown(t *testing.T) {
	sender := &recordingSender{}
	book := &staticAddressBook{byDNI: map[string]string{"30111222": "ana@example.com"}}
	issuer := NewIssuer(t.TempDir(), "Club Deportivo", sender, book)

	if err := issuer.Issue(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("emails sent=%d want 1", len(sender.sent))
	}
	req := sender.sent[0]
	if req.To[0] != "ana@example.com" {
		t.Errorf("to=%q want ana@example.com", req.To[0])
	}
	if !strings.Contains(req.HTML, "$140.00") {
		t.Errorf("email body missing amount:\n%s", req.HTML)
	}
	if !strings.Contains(req.HTML, "<table>") {
		t.Error("email body should be rendered HTML")
	}
}

// TestIssue_NoAddressStaysFileOnly verifies guests get no email attempt.
// PRE: sender present, address book cannot resolve the DNI.
// POST: ticket written, no email sent, no error.
func TestIssue_NoAddressStaysFileOnly(t *testing.T) {
	sender := &recordingSender{}
	book := &staticAddressBook{byDNI: map[string]string{}}
	dir := t.TempDir()
	issuer := NewIssuer(dir, "Club Deportivo", sender, book)

	if err := issuer.Issue(context.Background(), sampleEntry()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("emails sent=%d want 0", len(sender.sent))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("files written=%d want 1", len(entries))
	}
}

// TestIssue_UnwritableDirFails verifies disk errors surface.
// PRE: directory that does not exist.
// POST: error returned.
func TestIssue_UnwritableDirFails(t *testing.T) {
	issuer := NewIssuer(filepath.Join(t.TempDir(), "missing"), "Club Deportivo", nil, nil)
	if err := issuer.Issue(context.Background(), sampleEntry()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// memberLookup implements PersonLookup over fixed records.
type memberLookup struct {
	member    *person.Member
	nonMember *person.NonMember
}

// GetMember implements PersonLookup.
func (l *memberLookup) GetMember(_ context.Context, _ string) (person.Member, error) {
	if l.member == nil {
		return person.Member{}, person.ErrNotFound
	}
	return *l.member, nil
}

// GetNonMember implements PersonLookup.
func (l *memberLookup) GetNonMember(_ context.Context, _ string) (person.NonMember, error) {
	if l.nonMember == nil {
		return person.NonMember{}, person.ErrNotFound
	}
	return *l.nonMember, nil
}

// TestRegisterAddressBook_PrefersMemberThenNonMember verifies resolution.
// PRE: member and non-member records with addresses.
// POST: member address wins; non-member used when no member; ErrNotFound
// otherwise.
func TestRegisterAddressBook_PrefersMemberThenNonMember(t *testing.T) {
	both := &RegisterAddressBook{People: &memberLookup{
		member:    &person.Member{Email: "member@example.com"},
		nonMember: &person.NonMember{Email: "nm@example.com"},
	}}
	addr, err := both.EmailFor(context.Background(), "30111222")
	if err != nil || addr != "member@example.com" {
		t.Errorf("got (%q, %v), want member@example.com", addr, err)
	}

	nmOnly := &RegisterAddressBook{People: &memberLookup{
		nonMember: &person.NonMember{Email: "nm@example.com"},
	}}
	addr, err = nmOnly.EmailFor(context.Background(), "40555666")
	if err != nil || addr != "nm@example.com" {
		t.Errorf("got (%q, %v), want nm@example.com", addr, err)
	}

	none := &RegisterAddressBook{People: &memberLookup{}}
	_, err = none.EmailFor(context.Background(), "50777888")
	if !errors.Is(err, person.ErrNotFound) {
		t.Errorf("err=%v want ErrNotFound", err)
	}
}
