// Package actionprefs provides persistent storage for per-action user
// preferences.
//
// Pinned actions sort first in listings and the interactive launcher.
// Preferences are keyed by action id and survive catalog edits; entries
// for ids no longer in the catalog are simply ignored by readers.
//
// Storage is backed by the shared SQLite database at
// ~/.config/conductor/conductor.db (separate table).
package actionprefs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Advait-MD/Conductor/internal/database"
)

// Repository defines the persistence interface for action preferences.
type Repository interface {
	// Get returns preferences for an action id, or nil if not found.
	Get(actionID string) (*ActionPrefs, error)

	// Save upserts preferences for an action.
	Save(prefs *ActionPrefs) error

	// ListPinned returns the ids of all pinned actions.
	ListPinned() ([]string, error)

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the preferences repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("actionprefs: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("actionprefs: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// migrate creates the action_prefs table if it doesn't exist.
func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS action_prefs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			action_id  TEXT    NOT NULL,
			pinned     INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT    NOT NULL DEFAULT (datetime('now')),
			UNIQUE(action_id)
		);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("actionprefs: migration failed: %w", err)
	}
	return nil
}

// Get returns preferences for an action id, or nil if not found.
func (r *SQLiteRepository) Get(actionID string) (*ActionPrefs, error) {
	row := r.db.QueryRow(`
		SELECT id, action_id, pinned, updated_at
		FROM action_prefs WHERE action_id = ?`, actionID)

	var prefs ActionPrefs
	var pinned int
	var updatedStr string
	err := row.Scan(&prefs.ID, &prefs.ActionID, &pinned, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("actionprefs: query failed: %w", err)
	}
	prefs.Pinned = pinned != 0
	prefs.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedStr)
	return &prefs, nil
}

// Save upserts preferences for an action.
func (r *SQLiteRepository) Save(prefs *ActionPrefs) error {
	prefs.UpdatedAt = time.Now().UTC()

	pinned := 0
	if prefs.Pinned {
		pinned = 1
	}

	result, err := r.db.Exec(`
		INSERT INTO action_prefs (action_id, pinned, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(action_id) DO UPDATE SET
			pinned = excluded.pinned,
			updated_at = excluded.updated_at`,
		prefs.ActionID, pinned, prefs.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("actionprefs: upsert failed: %w", err)
	}

	if prefs.ID == 0 {
		id, err := result.LastInsertId()
		if err == nil {
			prefs.ID = id
		}
	}
	return nil
}

// ListPinned returns the ids of all pinned actions, sorted by id.
func (r *SQLiteRepository) ListPinned() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT action_id FROM action_prefs WHERE pinned = 1 ORDER BY action_id`)
	if err != nil {
		return nil, fmt.Errorf("actionprefs: query failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("actionprefs: scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
