/*
Package sqlite provides the SQLite-backed record source and employee
directory behind the leave board.

PURPOSE:
  Implements persistence for leave records and employees. The engine in
  package leave only ever sees in-memory snapshots fetched from here; it
  never mutates a stored record.

KEY TABLES:
  leave_records: absence requests (raw type tag, reason, date bounds,
                 workflow status)
  employees:     directory metadata for display attribution

ORDERING:
  ListLeaves returns records in insertion (rowid) order. The visibility
  filter preserves relative order, so list rendering stays deterministic
  end to end.

LOOSE TYPING AT THE BOUNDARY:
  Date bounds are stored as TEXT exactly as received. Parsing happens in
  the engine, where a malformed date degrades the record to invisible
  instead of failing the query. A row that fails to scan is skipped for
  the same reason.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL mode so
  readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/leaveboard.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/leave-board/leave"
	"github.com/warp/leave-board/roster"
)

// Store implements the record source and directory on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leave_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leave_records_user
		ON leave_records(user_id);
	CREATE INDEX IF NOT EXISTS idx_leave_records_status
		ON leave_records(status);
	-- Month-window queries scan by start date
	CREATE INDEX IF NOT EXISTS idx_leave_records_start
		ON leave_records(start_date);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// SaveLeave inserts or replaces a leave record.
func (s *Store) SaveLeave(ctx context.Context, r leave.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO leave_records
			(id, user_id, type, reason, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.ID), string(r.UserID), r.Type, r.Reason,
		r.StartDate, r.EndDate, string(r.Status),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save leave record: %w", err)
	}
	return nil
}

// GetLeave returns a single record, or nil if absent.
func (s *Store) GetLeave(ctx context.Context, id leave.RecordID) (*leave.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, reason, start_date, end_date, status
		FROM leave_records WHERE id = ?`, string(id))

	r, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get leave record: %w", err)
	}
	return &r, nil
}

// ListLeaves returns the full record snapshot in insertion order.
func (s *Store) ListLeaves(ctx context.Context) ([]leave.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, type, reason, start_date, end_date, status
		FROM leave_records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	records := []leave.Record{}
	for rows.Next() {
		r, err := scanLeave(rows)
		if err != nil {
			continue // skip malformed rows
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteLeave removes a record. Deleting an absent record is not an
// error; the caller decides how to surface that.
func (s *Store) DeleteLeave(ctx context.Context, id leave.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM leave_records WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete leave record: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLeave(row scannable) (leave.Record, error) {
	var r leave.Record
	var id, userID, status string
	err := row.Scan(&id, &userID, &r.Type, &r.Reason, &r.StartDate, &r.EndDate, &status)
	if err != nil {
		return leave.Record{}, err
	}
	r.ID = leave.RecordID(id)
	r.UserID = leave.UserID(userID)
	r.Status = leave.Status(status)
	return r, nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or replaces an employee.
func (s *Store) SaveEmployee(ctx context.Context, e roster.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO employees
			(id, username, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(e.ID), e.Username, e.FirstName, e.LastName,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee returns an employee, or nil if absent.
func (s *Store) GetEmployee(ctx context.Context, id leave.UserID) (*roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e roster.Employee
	var eid string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name
		FROM employees WHERE id = ?`, string(id)).
		Scan(&eid, &e.Username, &e.FirstName, &e.LastName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.ID = leave.UserID(eid)
	return &e, nil
}

// ListEmployees returns all employees in insertion order.
func (s *Store) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, first_name, last_name
		FROM employees ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []roster.Employee{}
	for rows.Next() {
		var e roster.Employee
		var id string
		if err := rows.Scan(&id, &e.Username, &e.FirstName, &e.LastName); err != nil {
			continue
		}
		e.ID = leave.UserID(id)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
