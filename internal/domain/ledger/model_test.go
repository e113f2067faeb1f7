package ledger_test

import (
	"errors"
	"testing"
	"time"

	"clubhouse/internal/domain/ledger"
)

// TestValidMethod tests the accepted payment methods.
func TestValidMethod(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{ledger.MethodCash, true},
		{ledger.MethodDebit, true},
		{ledger.MethodCredit, true},
		{ledger.MethodTransfer, true},
		{"Cheque", false},
		{"cash", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := ledger.ValidMethod(tt.method); got != tt.want {
				t.Errorf("ValidMethod(%q) = %v, want %v", tt.method, got, tt.want)
			}
		})
	}
}

// TestDueDate tests the 30-day payment term.
func TestDueDate(t *testing.T) {
	paid := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := ledger.DueDate(paid); !got.Equal(want) {
		t.Errorf("DueDate(01/01/2025) = %v, want %v", got, want)
	}
}

// TestParsePeriod tests MM-YYYY month resolution across boundaries.
func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "31-day month",
			token:     "01-2025",
			wantStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "february non-leap",
			token:     "02-2025",
			wantStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "february leap year",
			token:     "02-2024",
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december year boundary",
			token:     "12-2024",
			wantStart: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ledger.ParsePeriod(tt.token)
			if err != nil {
				t.Fatalf("ParsePeriod(%q) unexpected error: %v", tt.token, err)
			}
			if !p.Start.Equal(tt.wantStart) || !p.End.Equal(tt.wantEnd) {
				t.Errorf("ParsePeriod(%q) = [%v, %v], want [%v, %v]",
					tt.token, p.Start, p.End, tt.wantStart, tt.wantEnd)
			}
		})
	}

	t.Run("malformed token", func(t *testing.T) {
		_, err := ledger.ParsePeriod("2025-01")
		if !errors.Is(err, ledger.ErrInvalidPeriod) {
			t.Errorf("ParsePeriod error = %v, want ErrInvalidPeriod", err)
		}
	})
}

// TestCurrentPeriod tests the default period for the current month.
func TestCurrentPeriod(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	p := ledger.CurrentPeriod(now)
	if p.Start.Day() != 1 || p.Start.Month() != time.June {
		t.Errorf("CurrentPeriod start = %v, want 2025-06-01", p.Start)
	}
	if p.End.Day() != 30 || p.End.Month() != time.June {
		t.Errorf("CurrentPeriod end = %v, want 2025-06-30", p.End)
	}
}

// TestFormatAmount tests two-decimal rendering of cent amounts.
func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50000, "500.00"},
		{6999, "69.99"},
		{-150, "-1.50"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ledger.FormatAmount(tt.cents); got != tt.want {
				t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

// TestSportFeeKind tests the sport fee kind form.
func TestSportFeeKind(t *testing.T) {
	if got := ledger.SportFeeKind("Tennis"); got != "Fee: Tennis" {
		t.Errorf("SportFeeKind(Tennis) = %q, want %q", got, "Fee: Tennis")
	}
}
