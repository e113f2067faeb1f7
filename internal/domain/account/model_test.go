package account_test

import (
	"testing"

	"clubhouse/internal/domain/account"
)

// TestAccountValidate tests validation of operator accounts.
func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{"valid admin", account.Account{ID: "1", Username: "ops", Role: account.RoleAdmin}, false},
		{"valid clerk", account.Account{ID: "2", Username: "desk", Role: account.RoleClerk}, false},
		{"empty username", account.Account{ID: "3", Username: " ", Role: account.RoleAdmin}, true},
		{"unknown role", account.Account{ID: "4", Username: "ops", Role: "owner"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPasswordRoundTrip tests bcrypt hashing and verification.
func TestPasswordRoundTrip(t *testing.T) {
	a := account.Account{Username: "ops", Role: account.RoleAdmin}
	if err := a.SetPassword("short"); err == nil {
		t.Error("SetPassword should reject passwords under 12 characters")
	}
	if err := a.SetPassword("a sufficiently long password"); err != nil {
		t.Fatalf("SetPassword unexpected error: %v", err)
	}
	if err := a.CheckPassword("a sufficiently long password"); err != nil {
		t.Errorf("CheckPassword should accept the set password: %v", err)
	}
	if err := a.CheckPassword("wrong password entirely"); err == nil {
		t.Error("CheckPassword should reject a wrong password")
	}
}

// TestHasPermission tests the static role capability table.
func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		capability string
		want       bool
	}{
		{account.RoleAdmin, account.PermInstructors, true},
		{account.RoleAdmin, account.PermReporting, true},
		{account.RoleTreasurer, account.PermReporting, true},
		{account.RoleTreasurer, account.PermCatalog, false},
		{account.RoleClerk, account.PermFees, true},
		{account.RoleClerk, account.PermReporting, false},
		{"owner", account.PermFees, false},
		{account.RoleAdmin, "unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.capability, func(t *testing.T) {
			if got := account.HasPermission(tt.role, tt.capability); got != tt.want {
				t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.capability, got, tt.want)
			}
		})
	}
}
