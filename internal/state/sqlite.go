package state

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite state store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema initializes the database schema.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func generateID() string {
	return uuid.New().String()
}

// CreateRun records the start of one solve.
func (s *SQLiteStore) CreateRun(studyFile string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        generateID(),
		StudyFile: studyFile,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, study_file, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.StudyFile, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run terminal with its status and objective value.
func (s *SQLiteStore) CompleteRun(id string, status RunStatus, objective float64) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	// Only optimal runs carry an objective value.
	var obj interface{}
	if status == RunStatusOptimal {
		obj = objective
	}
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, objective = ?, completed_at = ? WHERE id = ?`,
		status, obj, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// FailRun marks a run failed with an error message.
func (s *SQLiteStore) FailRun(id string, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		RunStatusFailed, errMsg, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark run failed: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{}
	var objective sql.NullFloat64
	var completedAt sql.NullTime

	err := s.db.QueryRow(
		`SELECT id, study_file, status, objective, error, started_at, completed_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.StudyFile, &run.Status, &objective, &run.Error, &run.StartedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if objective.Valid {
		run.Objective = &objective.Float64
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, study_file, status, objective, error, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var objective sql.NullFloat64
		var completedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.StudyFile, &run.Status, &objective, &run.Error, &run.StartedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if objective.Valid {
			run.Objective = &objective.Float64
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveValues stores the solved and pinned quantities of a run in one
// transaction.
func (s *SQLiteStore) SaveValues(runID string, values []Value) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO run_values (run_id, key, value, unit, pinned) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range values {
		if _, err := stmt.Exec(runID, v.Key, v.Value, v.Unit, v.Pinned); err != nil {
			return fmt.Errorf("failed to insert value %s: %w", v.Key, err)
		}
	}
	return tx.Commit()
}

// GetValues returns a run's recorded quantities ordered by key.
func (s *SQLiteStore) GetValues(runID string) ([]Value, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT run_id, key, value, unit, pinned FROM run_values WHERE run_id = ? ORDER BY key`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}
	defer rows.Close()

	var values []Value
	for rows.Next() {
		var v Value
		if err := rows.Scan(&v.RunID, &v.Key, &v.Value, &v.Unit, &v.Pinned); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
