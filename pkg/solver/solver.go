// Package solver defines the boundary to the geometric-programming
// optimizer: the problem handed over, the solution or infeasibility handed
// back, and substitution application. Implementations perform no retry and
// no constraint repair; infeasibility is surfaced verbatim as a terminal
// result, never masked or auto-relaxed.
package solver

import (
	"context"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Problem is one flattened constraint system with an objective to minimize
// and per-solve substitutions.
type Problem struct {
	Objective     gp.Monomial
	System        *model.System
	Substitutions gp.Substitutions
}

// Status is the terminal outcome of a solve.
type Status int

const (
	// StatusOptimal means the solver found a feasible minimizer.
	StatusOptimal Status = iota
	// StatusInfeasible means the flattened constraint set cannot be
	// satisfied. Infeasible solutions carry no partial values; callers must
	// branch on the status explicitly.
	StatusInfeasible
)

func (s Status) String() string {
	if s == StatusOptimal {
		return "optimal"
	}
	return "infeasible"
}

// Solution is the read-only output of the external solver. Values are tagged
// with each variable's declared unit so a presentation layer can convert
// freely.
type Solution struct {
	Status    Status
	Objective unit.Quantity
	// Variables maps solved free variables to their values.
	Variables map[gp.Key]unit.Quantity
	// Constants echoes back every pinned value: build-time parameters plus
	// the substitution table.
	Constants map[gp.Key]unit.Quantity
	// Sensitivities maps constraint index to the log-log sensitivity of the
	// objective to that constraint, when the solver provides them.
	Sensitivities map[int]float64
}

// Value returns the solved or pinned value for a qualified name.
func (s *Solution) Value(k gp.Key) (unit.Quantity, bool) {
	if q, ok := s.Variables[k]; ok {
		return q, true
	}
	q, ok := s.Constants[k]
	return q, ok
}

// Solver is the opaque external optimizer.
type Solver interface {
	Solve(ctx context.Context, p Problem) (*Solution, error)
}
