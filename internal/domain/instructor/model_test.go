package instructor

import (
	"errors"
	"testing"
	"time"
)

// TestValidate covers the roster record gates.
// PRE: instructor with one field at a time made invalid.
// POST: each gate rejects; the full record passes.
func TestValidate(t *testing.T) {
	valid := Instructor{
		DNI:       "25999888",
		FirstName: "Carla",
		LastName:  "Ruiz",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Sport:     "Tennis",
	}

	tests := []struct {
		name    string
		mutate  func(*Instructor)
		wantErr bool
	}{
		{"valid record", func(i *Instructor) {}, false},
		{"empty DNI", func(i *Instructor) { i.DNI = "  " }, true},
		{"empty first name", func(i *Instructor) { i.FirstName = "" }, true},
		{"empty last name", func(i *Instructor) { i.LastName = " " }, true},
		{"missing sport", func(i *Instructor) { i.Sport = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := valid
			tt.mutate(&i)
			err := i.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

// TestValidate_MissingSportError verifies the sentinel for the sport gate.
// PRE: instructor with empty sport.
// POST: ErrEmptySport.
func TestValidate_MissingSportError(t *testing.T) {
	i := Instructor{DNI: "25999888", FirstName: "Carla", LastName: "Ruiz"}
	if err := i.Validate(); !errors.Is(err, ErrEmptySport) {
		t.Errorf("Validate() = %v, want ErrEmptySport", err)
	}
}
