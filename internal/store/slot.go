package store

import (
	"fmt"

	"github.com/theirongolddev/compound/internal/model"
)

// DefaultSlot is the slot name the challenge is stored under.
const DefaultSlot = "tradingChallengeTrades"

// Slot stores one sequence under a named slot of a DB.
type Slot struct {
	db   *DB
	name string
}

// NewSlot binds name in db. An empty name selects DefaultSlot.
func NewSlot(db *DB, name string) *Slot {
	if name == "" {
		name = DefaultSlot
	}
	return &Slot{db: db, name: name}
}

// Name returns the slot name.
func (s *Slot) Name() string { return s.name }

// Load returns the stored sequence. ok is false when nothing is stored.
func (s *Slot) Load() (model.Sequence, bool, error) {
	raw, ok, err := s.db.Get(s.name)
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", s.name, err)
	}
	if !ok {
		return nil, false, nil
	}
	seq, err := Decode([]byte(raw))
	if err != nil {
		return nil, true, fmt.Errorf("slot %s: %w", s.name, err)
	}
	return seq, true, nil
}

// Save replaces the stored sequence.
func (s *Slot) Save(seq model.Sequence) error {
	data, err := Encode(seq)
	if err != nil {
		return err
	}
	if err := s.db.Put(s.name, string(data)); err != nil {
		return fmt.Errorf("writing slot %s: %w", s.name, err)
	}
	return nil
}

// Clear removes the stored sequence.
func (s *Slot) Clear() error {
	return s.db.Delete(s.name)
}
