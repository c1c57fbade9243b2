// Package session drives the fixed-length collection wizard: one slot per
// candidate, then a review phase where amounts may be amended until the
// batch is handed to the dispatcher.
package session

import (
	"fmt"

	"payslip/internal/core"
)

// Session owns the ordered batch of records and the slot cursor. It is
// created explicitly by the caller and carries no ambient state; the
// interactive layer decides when to re-render around each transition.
type Session struct {
	size         int
	roster       core.Roster
	defaultEmail string
	records      []core.Record
}

func New(size int, roster core.Roster, defaultEmail string) (*Session, error) {
	if size <= 0 {
		return nil, fmt.Errorf("session size must be positive, got %d", size)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("empty candidate roster")
	}
	return &Session{
		size:         size,
		roster:       roster,
		defaultEmail: defaultEmail,
		records:      make([]core.Record, 0, size),
	}, nil
}

// SubmitSlot finalizes the current slot with the given name and amount,
// binding the session's default recipient address, and advances the
// cursor by one. There is no back transition.
func (s *Session) SubmitSlot(name string, amount core.Money) error {
	if s.ReadyForDispatch() {
		return core.ErrCollectionComplete
	}
	rec := core.Record{Name: name, Email: s.defaultEmail, Amount: amount}
	if err := rec.Validate(s.roster); err != nil {
		return err
	}
	s.records = append(s.records, rec)
	return nil
}

// Amend replaces the amount of an already collected record. Only valid in
// the review phase; name and email are immutable once a slot is submitted.
func (s *Session) Amend(index int, amount core.Money) error {
	if !s.ReadyForDispatch() {
		return core.ErrCollectionIncomplete
	}
	if index < 0 || index >= len(s.records) {
		return core.ErrIndexOutOfRange
	}
	if err := amount.Validate(); err != nil {
		return err
	}
	s.records[index].Amount = amount
	return nil
}

// ReadyForDispatch reports whether all slots have been collected.
func (s *Session) ReadyForDispatch() bool {
	return len(s.records) == s.size
}

// Cursor returns the index of the next slot to collect, in [0, Size].
func (s *Session) Cursor() int { return len(s.records) }

func (s *Session) Size() int { return s.size }

func (s *Session) Roster() core.Roster {
	return append(core.Roster(nil), s.roster...)
}

// Records returns a copy of the batch in slot order.
func (s *Session) Records() []core.Record {
	return append([]core.Record(nil), s.records...)
}
