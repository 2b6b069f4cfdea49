package habitbank

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store is the document persistence port. Implementations must persist the
// ledger document atomically as a whole: either the full updated ledger is
// written, or none of it.
//
// The habit collection is read-only from the engine's point of view.
type Store interface {
	// Ledger returns the family's ledger document, or ErrNoLedger.
	Ledger(ctx context.Context, familyID string) (*Ledger, error)
	// SaveLedger writes the full ledger document.
	SaveLedger(ctx context.Context, l *Ledger) error
	// Habits returns all tracked habits of the family.
	Habits(ctx context.Context, familyID string) ([]Habit, error)
	// Habit returns one habit by id, or ErrHabitNotFound.
	Habit(ctx context.Context, familyID, habitID string) (*Habit, error)
}

// MemStore is an in-memory Store. It round-trips documents through JSON so
// that callers never share memory with the stored ledger, the way a real
// document store behaves.
type MemStore struct {
	mu      sync.RWMutex
	ledgers map[string][]byte
	habits  map[string][]Habit
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		ledgers: make(map[string][]byte),
		habits:  make(map[string][]Habit),
	}
}

func (s *MemStore) Ledger(_ context.Context, familyID string) (*Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.ledgers[familyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoLedger, familyID)
	}
	var l Ledger
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("corrupt ledger document for %q: %w", familyID, err)
	}
	return &l, nil
}

func (s *MemStore) SaveLedger(_ context.Context, l *Ledger) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("could not encode ledger for %q: %w", l.FamilyID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[l.FamilyID] = raw
	return nil
}

func (s *MemStore) Habits(_ context.Context, familyID string) ([]Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Habit, len(s.habits[familyID]))
	copy(out, s.habits[familyID])
	return out, nil
}

func (s *MemStore) Habit(_ context.Context, familyID, habitID string) (*Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.habits[familyID] {
		if h.ID == habitID {
			habit := h
			return &habit, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrHabitNotFound, habitID)
}

// PutHabits replaces the family's habit collection. It exists for seeding
// and tests; the engine itself never writes habits.
func (s *MemStore) PutHabits(familyID string, habits []Habit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.habits[familyID] = habits
}

// RawLedger returns the stored document bytes, for inspection.
func (s *MemStore) RawLedger(familyID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.ledgers[familyID]
	return raw, ok
}
