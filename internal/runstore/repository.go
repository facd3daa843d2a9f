// Package runstore provides persistent run history.
//
// Every action run, whether it succeeded, failed, was cancelled, or
// was simulated, is recorded locally so `conductor history` can show
// what ran, when, and how it ended. Storage is backed by the shared
// SQLite database at ~/.config/conductor/conductor.db (or the platform
// equivalent returned by os.UserConfigDir).
package runstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Advait-MD/Conductor/internal/database"
)

// Repository defines the persistence interface for run records.
type Repository interface {
	// Save inserts a new run record (ID == 0, an ID is assigned) or
	// updates an existing one.
	Save(record *RunRecord) error

	// Get retrieves a single run record by ID, nil when absent.
	Get(id int64) (*RunRecord, error)

	// ListRecent returns the most recent n runs, newest first.
	ListRecent(n int) ([]RunRecord, error)

	// ListByAction returns the most recent n runs of one action.
	ListByAction(actionID string, n int) ([]RunRecord, error)

	// DeleteOlderThan removes terminal records that started more than d
	// ago. Returns the number of records removed.
	DeleteOlderThan(d time.Duration) (int64, error)

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the run repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("runs: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("runs: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			action_id   TEXT    NOT NULL,
			label       TEXT    NOT NULL DEFAULT '',
			kind        TEXT    NOT NULL DEFAULT '',
			status      TEXT    NOT NULL DEFAULT 'running',
			exit_code   INTEGER,
			error       TEXT    NOT NULL DEFAULT '',
			line_count  INTEGER NOT NULL DEFAULT 0,
			output_tail TEXT    NOT NULL DEFAULT '',
			started_at  TEXT    NOT NULL,
			finished_at TEXT    NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_runs_action_id ON runs(action_id);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("runs: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new record (ID == 0) or updates an existing one.
func (r *SQLiteRepository) Save(record *RunRecord) error {
	if record.StartedAt.IsZero() {
		record.StartedAt = time.Now().UTC()
	}

	if record.ID == 0 {
		result, err := r.db.Exec(`
			INSERT INTO runs (action_id, label, kind, status, exit_code, error, line_count, output_tail, started_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ActionID, record.Label, record.Kind, record.Status, nullableExit(record.ExitCode),
			record.Error, record.LineCount, record.OutputTail,
			record.StartedAt.Format(time.RFC3339Nano), formatFinished(record.FinishedAt),
		)
		if err != nil {
			return fmt.Errorf("runs: insert failed: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("runs: failed to get last insert ID: %w", err)
		}
		record.ID = id
		return nil
	}

	result, err := r.db.Exec(`
		UPDATE runs SET action_id=?, label=?, kind=?, status=?, exit_code=?,
		       error=?, line_count=?, output_tail=?, started_at=?, finished_at=?
		WHERE id=?`,
		record.ActionID, record.Label, record.Kind, record.Status, nullableExit(record.ExitCode),
		record.Error, record.LineCount, record.OutputTail,
		record.StartedAt.Format(time.RFC3339Nano), formatFinished(record.FinishedAt), record.ID,
	)
	if err != nil {
		return fmt.Errorf("runs: update failed: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("runs: run with ID %d not found", record.ID)
	}
	return nil
}

// Get retrieves a single run record by ID.
func (r *SQLiteRepository) Get(id int64) (*RunRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, action_id, label, kind, status, exit_code, error, line_count, output_tail, started_at, finished_at
		FROM runs WHERE id = ?`, id)

	record, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("runs: query failed: %w", err)
	}
	return record, nil
}

// ListRecent returns the most recent n runs regardless of status.
func (r *SQLiteRepository) ListRecent(n int) ([]RunRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, action_id, label, kind, status, exit_code, error, line_count, output_tail, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("runs: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByAction returns the most recent n runs of one action.
func (r *SQLiteRepository) ListByAction(actionID string, n int) ([]RunRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, action_id, label, kind, status, exit_code, error, line_count, output_tail, started_at, finished_at
		FROM runs WHERE action_id = ? ORDER BY started_at DESC LIMIT ?`, actionID, n)
	if err != nil {
		return nil, fmt.Errorf("runs: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// DeleteOlderThan removes terminal records that started more than d ago.
func (r *SQLiteRepository) DeleteOlderThan(d time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-d).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`
		DELETE FROM runs WHERE status != 'running' AND started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("runs: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func nullableExit(code *int) any {
	if code == nil {
		return nil
	}
	return *code
}

func formatFinished(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// scanRow scans a single row into a RunRecord.
func scanRow(row *sql.Row) (*RunRecord, error) {
	var record RunRecord
	var exit sql.NullInt64
	var startedStr, finishedStr string
	err := row.Scan(
		&record.ID, &record.ActionID, &record.Label, &record.Kind, &record.Status,
		&exit, &record.Error, &record.LineCount, &record.OutputTail,
		&startedStr, &finishedStr,
	)
	if err != nil {
		return nil, err
	}
	applyScanned(&record, exit, startedStr, finishedStr)
	return &record, nil
}

// scanRows scans multiple rows into RunRecords.
func scanRows(rows *sql.Rows) ([]RunRecord, error) {
	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var exit sql.NullInt64
		var startedStr, finishedStr string
		err := rows.Scan(
			&record.ID, &record.ActionID, &record.Label, &record.Kind, &record.Status,
			&exit, &record.Error, &record.LineCount, &record.OutputTail,
			&startedStr, &finishedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("runs: scan failed: %w", err)
		}
		applyScanned(&record, exit, startedStr, finishedStr)
		records = append(records, record)
	}
	return records, rows.Err()
}

func applyScanned(record *RunRecord, exit sql.NullInt64, startedStr, finishedStr string) {
	if exit.Valid {
		v := int(exit.Int64)
		record.ExitCode = &v
	}
	record.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	if finishedStr != "" {
		record.FinishedAt, _ = time.Parse(time.RFC3339Nano, finishedStr)
	}
}
