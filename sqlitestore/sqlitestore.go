// Package sqlitestore persists habit bank documents in a single SQLite
// database file. Ledger and habit documents are stored as JSON blobs, which
// keeps the document-store contract intact while gaining transactional
// single-file durability.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/habitwealth/habitbank"
)

// migrations is the schema, one statement per entry (SQLite executes one at
// a time).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ledgers (
		family_id  TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		family_id  TEXT NOT NULL,
		habit_id   TEXT NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (family_id, habit_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_family ON habits(family_id)`,
}

// Store is a SQLite-backed habitbank.Store.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("could not migrate database %q: %w", path, err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Ledger reads the family's ledger document.
func (s *Store) Ledger(ctx context.Context, familyID string) (*habitbank.Ledger, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM ledgers WHERE family_id = ?`, familyID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", habitbank.ErrNoLedger, familyID)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger for %q: %w", familyID, err)
	}
	var l habitbank.Ledger
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		return nil, fmt.Errorf("corrupt ledger document for %q: %w", familyID, err)
	}
	return &l, nil
}

// SaveLedger upserts the full ledger document in one statement.
func (s *Store) SaveLedger(ctx context.Context, l *habitbank.Ledger) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("could not encode ledger for %q: %w", l.FamilyID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledgers (family_id, doc, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(family_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		l.FamilyID, string(raw))
	if err != nil {
		return fmt.Errorf("could not save ledger for %q: %w", l.FamilyID, err)
	}
	return nil
}

// Habits returns all tracked habits of the family.
func (s *Store) Habits(ctx context.Context, familyID string) ([]habitbank.Habit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM habits WHERE family_id = ? ORDER BY habit_id`, familyID)
	if err != nil {
		return nil, fmt.Errorf("could not read habits for %q: %w", familyID, err)
	}
	defer rows.Close()

	var habits []habitbank.Habit
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var h habitbank.Habit
		if err := json.Unmarshal([]byte(doc), &h); err != nil {
			return nil, fmt.Errorf("corrupt habit document in %q: %w", familyID, err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// Habit returns one habit by id.
func (s *Store) Habit(ctx context.Context, familyID, habitID string) (*habitbank.Habit, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM habits WHERE family_id = ? AND habit_id = ?`, familyID, habitID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", habitbank.ErrHabitNotFound, habitID)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read habit %q: %w", habitID, err)
	}
	var h habitbank.Habit
	if err := json.Unmarshal([]byte(doc), &h); err != nil {
		return nil, fmt.Errorf("corrupt habit document %q: %w", habitID, err)
	}
	return &h, nil
}

// PutHabits replaces the family's habit collection in one transaction.
func (s *Store) PutHabits(ctx context.Context, familyID string, habits []habitbank.Habit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE family_id = ?`, familyID); err != nil {
		return fmt.Errorf("could not clear habits for %q: %w", familyID, err)
	}
	for i := range habits {
		raw, err := json.Marshal(&habits[i])
		if err != nil {
			return fmt.Errorf("could not encode habit %q: %w", habits[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habits (family_id, habit_id, doc) VALUES (?, ?, ?)`,
			familyID, habits[i].ID, string(raw)); err != nil {
			return fmt.Errorf("could not write habit %q: %w", habits[i].ID, err)
		}
	}
	return tx.Commit()
}

// Families lists the family ids with a ledger.
func (s *Store) Families(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT family_id FROM ledgers ORDER BY family_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		families = append(families, id)
	}
	return families, rows.Err()
}
