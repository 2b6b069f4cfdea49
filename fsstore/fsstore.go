// Package fsstore persists habit bank documents as plain files: one
// directory per family holding the ledger document as JSON and the habit
// collection as JSONL. It is the local-first store used by the CLI.
package fsstore

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/habitwealth/habitbank"
)

const (
	ledgerFile = "bank.json"
	habitsFile = "habits.jsonl"
)

// Store is a file-backed habitbank.Store rooted at a directory.
type Store struct {
	root string
}

// Open returns a Store rooted at dir, creating it when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create store root %q: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

func (s *Store) familyDir(familyID string) string {
	return filepath.Join(s.root, familyID)
}

// Ledger reads the family's ledger document.
func (s *Store) Ledger(_ context.Context, familyID string) (*habitbank.Ledger, error) {
	path := filepath.Join(s.familyDir(familyID), ledgerFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", habitbank.ErrNoLedger, familyID)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", path, err)
	}
	var l habitbank.Ledger
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return &l, nil
}

// SaveLedger writes the full ledger document. The write goes through a
// temporary file and a rename so a crash never leaves a half document.
func (s *Store) SaveLedger(_ context.Context, l *habitbank.Ledger) error {
	if l.FamilyID == "" {
		return fmt.Errorf("cannot save ledger with an empty family id")
	}
	dir := s.familyDir(l.FamilyID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create family directory %q: %w", dir, err)
	}

	raw, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode ledger for %q: %w", l.FamilyID, err)
	}

	path := filepath.Join(dir, ledgerFile)
	tmp, err := os.CreateTemp(dir, ledgerFile+".*")
	if err != nil {
		return fmt.Errorf("could not create temp ledger file in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ledger file %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Habits reads the family's habit collection, one JSON document per line.
// A missing file is an empty collection, not an error.
func (s *Store) Habits(_ context.Context, familyID string) ([]habitbank.Habit, error) {
	path := filepath.Join(s.familyDir(familyID), habitsFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open habits file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeHabits(f)
}

// Habit returns one habit by id.
func (s *Store) Habit(ctx context.Context, familyID, habitID string) (*habitbank.Habit, error) {
	habits, err := s.Habits(ctx, familyID)
	if err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].ID == habitID {
			return &habits[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", habitbank.ErrHabitNotFound, habitID)
}

// PutHabits replaces the family's habit collection. The engine never calls
// this; it exists for seeding and imports.
func (s *Store) PutHabits(_ context.Context, familyID string, habits []habitbank.Habit) error {
	dir := s.familyDir(familyID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create family directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, habitsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create habits file %q: %w", path, err)
	}
	defer f.Close()
	return EncodeHabits(f, habits)
}

// Families lists the family ids present in the store.
func (s *Store) Families(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("could not list store root %q: %w", s.root, err)
	}
	var families []string
	for _, e := range entries {
		if e.IsDir() {
			families = append(families, e.Name())
		}
	}
	return families, nil
}

// DecodeHabits decodes a JSONL stream of habit documents.
func DecodeHabits(r io.Reader) ([]habitbank.Habit, error) {
	var habits []habitbank.Habit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var h habitbank.Habit
		if err := json.Unmarshal(line, &h); err != nil {
			return nil, fmt.Errorf("could not decode habit line %q: %w", string(line), err)
		}
		habits = append(habits, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading habits: %w", err)
	}
	return habits, nil
}

// EncodeHabits writes habits as JSONL, one document per line.
func EncodeHabits(w io.Writer, habits []habitbank.Habit) error {
	for i := range habits {
		raw, err := json.Marshal(&habits[i])
		if err != nil {
			return fmt.Errorf("could not encode habit %q: %w", habits[i].ID, err)
		}
		if _, err := w.Write(append(raw, '\n')); err != nil {
			return fmt.Errorf("could not write habit %q: %w", habits[i].ID, err)
		}
	}
	return nil
}
