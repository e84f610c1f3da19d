// Package descent is the bundled geometric-program solver. It works in log
// space, where a GP becomes a smooth convex program: monomial equalities are
// linear, posynomial inequalities are log-sum-exp.
//
// The solve pipeline is three passes: propagate monomial equalities with a
// single unknown (this alone settles fully-determined systems exactly), run
// a quadratic-penalty descent with gonum's L-BFGS for whatever freedom
// remains, then verify every constraint at the final point. Verification
// decides the terminal status; an unsatisfiable system is reported as
// Infeasible, never as a spurious numeric solution.
package descent

import (
	"context"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/solver"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Option configures the solver.
type Option func(*GP)

// WithTolerance sets the log-space feasibility tolerance used by
// verification.
func WithTolerance(tol float64) Option {
	return func(g *GP) { g.tol = tol }
}

// WithMaxIterations caps the L-BFGS major iterations per penalty round.
func WithMaxIterations(n int) Option {
	return func(g *GP) { g.maxIter = n }
}

// GP solves geometric programs. The zero value is not usable; call New.
type GP struct {
	tol     float64
	maxIter int
}

// New returns a solver with default settings.
func New(opts ...Option) *GP {
	g := &GP{tol: 1e-6, maxIter: 2000}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Solve implements solver.Solver.
func (g *GP) Solve(ctx context.Context, p solver.Problem) (*solver.Solution, error) {
	pinned, err := solver.ApplySubstitutions(p.System, p.Substitutions)
	if err != nil {
		return nil, err
	}
	prog, err := compile(p.System, p.Objective, pinned)
	if err != nil {
		return nil, err
	}

	y := make([]float64, prog.n)
	known := propagate(prog, y, g.tol)
	if known == nil {
		// Conflicting equality pins: the system is already unsatisfiable.
		return &solver.Solution{Status: solver.StatusInfeasible}, nil
	}

	unresolved := false
	for i := 0; i < prog.n; i++ {
		if !known[i] {
			unresolved = true
			break
		}
	}
	var sens map[int]float64
	if unresolved {
		if y, sens, err = g.minimize(ctx, prog, y); err != nil {
			return nil, err
		}
	}

	for _, lc := range prog.cons {
		if lc.residual(y) > g.tol {
			return &solver.Solution{Status: solver.StatusInfeasible}, nil
		}
	}

	return g.solution(prog, pinned, y, sens), nil
}

// minimize runs quadratic-penalty rounds with increasing weight, each solved
// by L-BFGS. The returned sensitivities are the penalty-multiplier estimates
// from the final round.
func (g *GP) minimize(ctx context.Context, prog *program, y0 []float64) ([]float64, map[int]float64, error) {
	y := append([]float64(nil), y0...)
	var mu float64
	for _, mu = range []float64{1e2, 1e4, 1e6, 1e8} {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		problem := optimize.Problem{
			Func: func(x []float64) float64 { return penalty(prog, x, mu) },
			Grad: func(grad, x []float64) { penaltyGrad(prog, x, mu, grad) },
		}
		settings := &optimize.Settings{
			GradientThreshold: 1e-12,
			MajorIterations:   g.maxIter,
		}
		result, err := optimize.Minimize(problem, y, settings, &optimize.LBFGS{})
		if err != nil && result == nil {
			return nil, nil, err
		}
		// Line-search stalls near the minimizer are fine: verification has
		// the final say on the point we keep.
		if result != nil {
			y = result.X
		}
	}

	sens := make(map[int]float64, len(prog.cons))
	for _, lc := range prog.cons {
		r := lc.residual(y)
		if r > 0 {
			sens[lc.src] = 2 * mu * r
		}
	}
	return y, sens, nil
}

// penalty is the smooth merit function: the linear log-objective plus
// mu * violation^2 per constraint.
func penalty(prog *program, y []float64, mu float64) float64 {
	f := prog.obj.eval(y)
	for _, lc := range prog.cons {
		if lc.eq {
			h := lc.posy[0].eval(y) - lc.mono.eval(y)
			f += mu * h * h
		} else {
			gv := logSumExp(lc.posy, y) - lc.mono.eval(y)
			if gv > 0 {
				f += mu * gv * gv
			}
		}
	}
	return f
}

func penaltyGrad(prog *program, y []float64, mu float64, grad []float64) {
	for i := range grad {
		grad[i] = 0
	}
	accum := func(m logMono, w float64) {
		for j, i := range m.idx {
			grad[i] += w * m.exp[j]
		}
	}
	accum(prog.obj, 1)
	for _, lc := range prog.cons {
		if lc.eq {
			h := lc.posy[0].eval(y) - lc.mono.eval(y)
			accum(lc.posy[0], 2*mu*h)
			accum(lc.mono, -2*mu*h)
			continue
		}
		lse := logSumExp(lc.posy, y)
		gv := lse - lc.mono.eval(y)
		if gv <= 0 {
			continue
		}
		w := 2 * mu * gv
		for _, term := range lc.posy {
			accum(term, w*math.Exp(term.eval(y)-lse))
		}
		accum(lc.mono, -w)
	}
}

// propagate pins variables through monomial equalities with exactly one
// unknown, iterating to a fixed point. It returns the known-mask, or nil when
// two equalities pin the same variable to conflicting values.
func propagate(prog *program, y []float64, tol float64) []bool {
	known := make([]bool, prog.n)
	for changed := true; changed; {
		changed = false
		for _, lc := range prog.cons {
			if !lc.eq {
				continue
			}
			// Residual form: posy[0] - mono == 0.
			c := lc.posy[0].c - lc.mono.c
			unknownIdx, unknownExp := -1, 0.0
			ok := true
			scan := func(m logMono, sign float64) {
				for j, i := range m.idx {
					e := sign * m.exp[j]
					switch {
					case known[i]:
						c += e * y[i]
					case unknownIdx == i:
						unknownExp += e
					case unknownIdx == -1:
						unknownIdx, unknownExp = i, e
					default:
						ok = false
					}
				}
			}
			scan(lc.posy[0], 1)
			scan(lc.mono, -1)
			if !ok {
				continue
			}
			if unknownIdx == -1 || unknownExp == 0 {
				continue
			}
			val := -c / unknownExp
			if known[unknownIdx] {
				if math.Abs(val-y[unknownIdx]) > tol {
					return nil
				}
				continue
			}
			y[unknownIdx] = val
			known[unknownIdx] = true
			changed = true
		}
	}
	return known
}

// solution converts the log-space point back into declared units.
func (g *GP) solution(prog *program, pinned map[gp.Key]unit.Quantity, y []float64, sens map[int]float64) *solver.Solution {
	sol := &solver.Solution{
		Status:        solver.StatusOptimal,
		Variables:     make(map[gp.Key]unit.Quantity, prog.n),
		Constants:     make(map[gp.Key]unit.Quantity, len(pinned)),
		Sensitivities: sens,
	}
	for i, k := range prog.keys {
		si := math.Exp(y[i])
		u := prog.vars[i].Unit()
		sol.Variables[k] = unit.New(si/u.Factor, u)
	}
	for k, q := range pinned {
		sol.Constants[k] = q
	}
	// Objective value in SI, tagged with the monomial's composed dimensions.
	sol.Objective = unit.New(math.Exp(prog.obj.eval(y)), unit.Unit{
		Name:   prog.objDims.String(),
		Factor: 1,
		Dims:   prog.objDims,
	})
	return sol
}
