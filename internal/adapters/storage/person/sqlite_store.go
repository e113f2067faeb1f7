package person

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"clubhouse/internal/adapters/storage"
	ledgerStore "clubhouse/internal/adapters/storage/ledger"
	ledgerDomain "clubhouse/internal/domain/ledger"
	domain "clubhouse/internal/domain/person"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new person store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetMember retrieves a Member by DNI.
// PRE: dni is non-empty
// POST: Returns the member or person.ErrNotFound
func (s *SQLiteStore) GetMember(ctx context.Context, dni string) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT dni, first_name, last_name, address, phone, email, registered_at, social_fee_cents
		 FROM member WHERE dni = ?`, dni)

	var m domain.Member
	var registeredAt string
	err := row.Scan(&m.DNI, &m.FirstName, &m.LastName, &m.Address, &m.Phone, &m.Email, &registeredAt, &m.SocialFeeCents)
	if err == sql.ErrNoRows {
		return domain.Member{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Member{}, err
	}
	if m.RegisteredAt, err = time.Parse(storage.DateFormat, registeredAt); err != nil {
		return domain.Member{}, fmt.Errorf("bad registered_at %q: %w", registeredAt, err)
	}
	return m, nil
}

// GetGuest retrieves a Guest by DNI.
// PRE: dni is non-empty
// POST: Returns the guest or person.ErrNotFound
func (s *SQLiteStore) GetGuest(ctx context.Context, dni string) (domain.Guest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT dni, first_name, last_name, sponsor_dni FROM guest WHERE dni = ?", dni)

	var g domain.Guest
	err := row.Scan(&g.DNI, &g.FirstName, &g.LastName, &g.SponsorDNI)
	if err == sql.ErrNoRows {
		return domain.Guest{}, domain.ErrNotFound
	}
	return g, err
}

// GetNonMember retrieves a NonMember by DNI.
// PRE: dni is non-empty
// POST: Returns the non-member or person.ErrNotFound
func (s *SQLiteStore) GetNonMember(ctx context.Context, dni string) (domain.NonMember, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT dni, first_name, last_name, phone, email FROM non_member WHERE dni = ?", dni)

	var n domain.NonMember
	err := row.Scan(&n.DNI, &n.FirstName, &n.LastName, &n.Phone, &n.Email)
	if err == sql.ErrNoRows {
		return domain.NonMember{}, domain.ErrNotFound
	}
	return n, err
}

// CreateMemberWithFee inserts a member and their social fee ledger entry in
// one transaction.
// PRE: m has been validated; fee is the matching "Social Fee" entry
// POST: Both rows are persisted, or neither; returns the ledger entry id
func (s *SQLiteStore) CreateMemberWithFee(ctx context.Context, m domain.Member, fee ledgerDomain.Entry) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT dni FROM member WHERE dni = ?", m.DNI).Scan(&existing)
	if err == nil {
		return 0, domain.ErrDuplicateIdentity
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO member (dni, first_name, last_name, address, phone, email, registered_at, social_fee_cents)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.DNI, m.FirstName, m.LastName, m.Address, m.Phone, m.Email,
		m.RegisteredAt.Format(storage.DateFormat), m.SocialFeeCents)
	if err != nil {
		return 0, err
	}

	entryID, err := ledgerStore.InsertEntry(ctx, tx, fee)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return entryID, nil
}

// CreateGuest inserts a guest after checking the sponsor and the guest cap
// inside one transaction. The cap check and insert are a single guarded
// statement, so concurrent registrations cannot push a sponsor past the cap.
// PRE: g has been validated
// POST: Guest is persisted, or a domain error identifies the rejection
func (s *SQLiteStore) CreateGuest(ctx context.Context, g domain.Guest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sponsor string
	err = tx.QueryRowContext(ctx, "SELECT dni FROM member WHERE dni = ?", g.SponsorDNI).Scan(&sponsor)
	if err == sql.ErrNoRows {
		return domain.ErrSponsorNotFound
	}
	if err != nil {
		return err
	}

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT dni FROM guest WHERE dni = ?", g.DNI).Scan(&existing)
	if err == nil {
		return domain.ErrDuplicateIdentity
	}
	if err != sql.ErrNoRows {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO guest (dni, first_name, last_name, sponsor_dni)
		 SELECT ?, ?, ?, ?
		 WHERE (SELECT COUNT(*) FROM guest WHERE sponsor_dni = ?) < ?`,
		g.DNI, g.FirstName, g.LastName, g.SponsorDNI,
		g.SponsorDNI, domain.MaxGuestsPerMember)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrGuestCapExceeded
	}

	return tx.Commit()
}

// CreateNonMember inserts a non-member record.
// PRE: n has been validated
// POST: Non-member is persisted, or ErrDuplicateIdentity
func (s *SQLiteStore) CreateNonMember(ctx context.Context, n domain.NonMember) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT dni FROM non_member WHERE dni = ?", n.DNI).Scan(&existing)
	if err == nil {
		return domain.ErrDuplicateIdentity
	}
	if err != sql.ErrNoRows {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO non_member (dni, first_name, last_name, phone, email) VALUES (?, ?, ?, ?, ?)",
		n.DNI, n.FirstName, n.LastName, n.Phone, n.Email)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateMember overwrites a member's editable fields. The registration date
// is never changed; the ledger is never touched.
// PRE: m.DNI identifies an existing member
// POST: Contact fields and social fee are updated
func (s *SQLiteStore) UpdateMember(ctx context.Context, m domain.Member) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE member SET first_name = ?, last_name = ?, address = ?, phone = ?, email = ?, social_fee_cents = ?
		 WHERE dni = ?`,
		m.FirstName, m.LastName, m.Address, m.Phone, m.Email, m.SocialFeeCents, m.DNI)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMember removes a member record. Ledger entries remain untouched.
func (s *SQLiteStore) DeleteMember(ctx context.Context, dni string) error {
	return s.deleteByDNI(ctx, "member", dni)
}

// DeleteGuest removes a guest record, freeing a sponsor slot.
func (s *SQLiteStore) DeleteGuest(ctx context.Context, dni string) error {
	return s.deleteByDNI(ctx, "guest", dni)
}

// DeleteNonMember removes a non-member record.
func (s *SQLiteStore) DeleteNonMember(ctx context.Context, dni string) error {
	return s.deleteByDNI(ctx, "non_member", dni)
}

func (s *SQLiteStore) deleteByDNI(ctx context.Context, table, dni string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE dni = ?", dni)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMembers returns all members ordered by DNI.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT dni, first_name, last_name, address, phone, email, registered_at, social_fee_cents
		 FROM member ORDER BY dni`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Member
	for rows.Next() {
		var m domain.Member
		var registeredAt string
		if err := rows.Scan(&m.DNI, &m.FirstName, &m.LastName, &m.Address, &m.Phone, &m.Email, &registeredAt, &m.SocialFeeCents); err != nil {
			return nil, err
		}
		if m.RegisteredAt, err = time.Parse(storage.DateFormat, registeredAt); err != nil {
			return nil, fmt.Errorf("bad registered_at %q: %w", registeredAt, err)
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

// ListGuests returns all guests ordered by DNI.
func (s *SQLiteStore) ListGuests(ctx context.Context) ([]domain.Guest, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT dni, first_name, last_name, sponsor_dni FROM guest ORDER BY dni")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Guest
	for rows.Next() {
		var g domain.Guest
		if err := rows.Scan(&g.DNI, &g.FirstName, &g.LastName, &g.SponsorDNI); err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

// ListNonMembers returns all non-members ordered by DNI.
func (s *SQLiteStore) ListNonMembers(ctx context.Context) ([]domain.NonMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT dni, first_name, last_name, phone, email FROM non_member ORDER BY dni")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.NonMember
	for rows.Next() {
		var n domain.NonMember
		if err := rows.Scan(&n.DNI, &n.FirstName, &n.LastName, &n.Phone, &n.Email); err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// GuestCount returns the number of live guests for a sponsor.
// PRE: sponsorDNI is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) GuestCount(ctx context.Context, sponsorDNI string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM guest WHERE sponsor_dni = ?", sponsorDNI).Scan(&count)
	return count, err
}
