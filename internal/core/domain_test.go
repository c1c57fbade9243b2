package core

import (
	"errors"
	"testing"
)

var testRoster = Roster{"Sajjad", "Aun", "Uma", "Shivani"}

func TestRosterContains(t *testing.T) {
	if !testRoster.Contains("Uma") {
		t.Error("expected roster to contain Uma")
	}
	if testRoster.Contains("uma") {
		t.Error("matching must be exact, not case-folded")
	}
	if testRoster.Contains("Nobody") {
		t.Error("unexpected roster member")
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr error
	}{
		{
			name:   "valid",
			record: Record{Name: "Sajjad", Email: "pay@example.com", Amount: Money{Cents: 100000}},
		},
		{
			name:   "zero amount is valid",
			record: Record{Name: "Aun", Email: "pay@example.com", Amount: Money{Cents: 0}},
		},
		{
			name:    "unknown name",
			record:  Record{Name: "Stranger", Email: "pay@example.com", Amount: Money{Cents: 100}},
			wantErr: ErrUnknownName,
		},
		{
			name:    "bad email",
			record:  Record{Name: "Uma", Email: "not-an-address", Amount: Money{Cents: 100}},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "negative amount",
			record:  Record{Name: "Shivani", Email: "pay@example.com", Amount: Money{Cents: -1}},
			wantErr: ErrInvalidAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate(testRoster)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
