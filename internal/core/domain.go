package core

import (
	"errors"
	"strings"
)

type (
	Money struct {
		Cents int64
	}

	// Record is one person's finalized slip request: who it is for,
	// where the slip goes and how much it states.
	Record struct {
		Name   string
		Email  string
		Amount Money
	}

	// Roster is the closed set of names a slot may be submitted for.
	Roster []string
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrUnknownName          = errors.New("unknown candidate name")
	ErrInvalidEmail         = errors.New("invalid recipient email")
	ErrCollectionComplete   = errors.New("collection already complete")
	ErrCollectionIncomplete = errors.New("collection not yet complete")
	ErrIndexOutOfRange      = errors.New("record index out of range")
)

// Contains reports whether name is part of the roster. Matching is exact;
// names are not case-folded.
func (r Roster) Contains(name string) bool {
	for _, n := range r {
		if n == name {
			return true
		}
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (rec Record) Validate(roster Roster) error {
	if !roster.Contains(rec.Name) {
		return ErrUnknownName
	}
	if !strings.Contains(rec.Email, "@") {
		return ErrInvalidEmail
	}
	if err := rec.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
