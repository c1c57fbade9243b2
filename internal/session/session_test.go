package session

import (
	"errors"
	"testing"

	"payslip/internal/core"
)

var roster = core.Roster{"Sajjad", "Aun", "Uma", "Shivani"}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(4, roster, "payroll@example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func fill(t *testing.T, s *Session) {
	t.Helper()
	amounts := []int64{100000, 120000, 90000, 110000}
	for i, name := range roster {
		if err := s.SubmitSlot(name, core.Money{Cents: amounts[i]}); err != nil {
			t.Fatalf("SubmitSlot(%s): %v", name, err)
		}
	}
}

func TestSubmitSlotAdvancesCursor(t *testing.T) {
	s := newTestSession(t)

	if s.ReadyForDispatch() {
		t.Fatal("fresh session must not be ready for dispatch")
	}
	for i, name := range roster {
		if got := s.Cursor(); got != i {
			t.Fatalf("cursor before slot %d = %d", i, got)
		}
		if err := s.SubmitSlot(name, core.Money{Cents: int64(1000 * (i + 1))}); err != nil {
			t.Fatalf("SubmitSlot: %v", err)
		}
		if got := len(s.Records()); got != i+1 {
			t.Fatalf("batch length after slot %d = %d", i, got)
		}
		if want := i == len(roster)-1; s.ReadyForDispatch() != want {
			t.Fatalf("ReadyForDispatch after slot %d = %v", i, s.ReadyForDispatch())
		}
	}
}

func TestSubmitSlotBindsDefaultEmail(t *testing.T) {
	s := newTestSession(t)
	if err := s.SubmitSlot("Uma", core.Money{Cents: 500}); err != nil {
		t.Fatalf("SubmitSlot: %v", err)
	}
	recs := s.Records()
	if recs[0].Email != "payroll@example.com" {
		t.Fatalf("record email = %q", recs[0].Email)
	}
}

func TestSubmitSlotRejectsUnknownName(t *testing.T) {
	s := newTestSession(t)
	err := s.SubmitSlot("Nobody", core.Money{Cents: 100})
	if !errors.Is(err, core.ErrUnknownName) {
		t.Fatalf("got %v, want ErrUnknownName", err)
	}
	if s.Cursor() != 0 {
		t.Fatal("rejected slot must not advance cursor")
	}
}

func TestSubmitSlotAcceptsZeroAmount(t *testing.T) {
	s := newTestSession(t)
	if err := s.SubmitSlot("Aun", core.Money{Cents: 0}); err != nil {
		t.Fatalf("zero amount must be accepted: %v", err)
	}
}

func TestSubmitSlotAfterCompletion(t *testing.T) {
	s := newTestSession(t)
	fill(t, s)

	err := s.SubmitSlot("Sajjad", core.Money{Cents: 100})
	if !errors.Is(err, core.ErrCollectionComplete) {
		t.Fatalf("got %v, want ErrCollectionComplete", err)
	}
	if s.Cursor() != 4 || len(s.Records()) != 4 {
		t.Fatal("out-of-phase submit corrupted the batch")
	}
}

func TestAmendInReviewPhase(t *testing.T) {
	s := newTestSession(t)
	fill(t, s)

	if err := s.Amend(2, core.Money{Cents: 95000}); err != nil {
		t.Fatalf("Amend: %v", err)
	}
	recs := s.Records()
	if recs[2].Amount.Cents != 95000 {
		t.Fatalf("amended amount = %d", recs[2].Amount.Cents)
	}
	if recs[2].Name != "Uma" || recs[2].Email != "payroll@example.com" {
		t.Fatal("Amend must leave name and email unchanged")
	}
}

func TestAmendBeforeReviewPhase(t *testing.T) {
	s := newTestSession(t)
	if err := s.SubmitSlot("Sajjad", core.Money{Cents: 100}); err != nil {
		t.Fatalf("SubmitSlot: %v", err)
	}

	err := s.Amend(0, core.Money{Cents: 200})
	if !errors.Is(err, core.ErrCollectionIncomplete) {
		t.Fatalf("got %v, want ErrCollectionIncomplete", err)
	}
	if s.Records()[0].Amount.Cents != 100 {
		t.Fatal("out-of-phase amend must not mutate the batch")
	}
}

func TestAmendBounds(t *testing.T) {
	s := newTestSession(t)
	fill(t, s)

	for _, idx := range []int{-1, 4, 100} {
		if err := s.Amend(idx, core.Money{Cents: 1}); !errors.Is(err, core.ErrIndexOutOfRange) {
			t.Errorf("Amend(%d) = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if err := s.Amend(0, core.Money{Cents: -5}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("negative amend = %v, want ErrInvalidAmount", err)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := newTestSession(t)
	fill(t, s)

	recs := s.Records()
	recs[0].Amount.Cents = 1
	if s.Records()[0].Amount.Cents == 1 {
		t.Fatal("Records must not expose internal state")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, roster, "x@y"); err == nil {
		t.Error("zero size must be rejected")
	}
	if _, err := New(4, nil, "x@y"); err == nil {
		t.Error("empty roster must be rejected")
	}
}
