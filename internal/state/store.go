// Package state persists solve history using SQLite. Each solve of a study
// becomes a run with its terminal status, objective value, and the full
// variable table, so sweeps can be compared after the fact.
package state

import "time"

// RunStatus is the lifecycle state of one recorded solve.
type RunStatus string

// Run status values.
const (
	RunStatusRunning    RunStatus = "running"
	RunStatusOptimal    RunStatus = "optimal"
	RunStatusInfeasible RunStatus = "infeasible"
	RunStatusFailed     RunStatus = "failed"
)

// Run is one recorded solve of a study.
type Run struct {
	ID          string
	StudyFile   string
	Status      RunStatus
	Objective   *float64
	Error       string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Value is one solved or pinned quantity of a run.
type Value struct {
	RunID  string
	Key    string
	Value  float64
	Unit   string
	Pinned bool
}

// Store is the persistence boundary for solve history.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	CreateRun(studyFile string) (*Run, error)
	CompleteRun(id string, status RunStatus, objective float64) error
	FailRun(id string, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)

	SaveValues(runID string, values []Value) error
	GetValues(runID string) ([]Value, error)
}
