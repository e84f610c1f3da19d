package descent

import (
	"fmt"
	"math"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// logMono is a monomial mapped to log space: value(y) = c + Σ exp[j]*y[idx[j]]
// where y holds the logs of the free variables in SI magnitudes. Pinned
// variables are folded into c.
type logMono struct {
	c   float64
	idx []int
	exp []float64
}

func (m logMono) eval(y []float64) float64 {
	v := m.c
	for j, i := range m.idx {
		v += m.exp[j] * y[i]
	}
	return v
}

// logConstraint is a compiled constraint. For equalities the residual is
// lhs - rhs of two monomials; for inequalities the violation is
// logsumexp(posy) - mono.
type logConstraint struct {
	eq   bool
	posy []logMono // equality: exactly one entry (the lhs)
	mono logMono   // equality: the rhs; inequality: the bounding monomial
	src  int       // index into the flattened constraint list
}

// program is a compiled geometric program over n free variables.
type program struct {
	n       int
	keys    []gp.Key // free-variable order
	vars    []*gp.Variable
	obj     logMono
	objDims unit.Dims
	cons    []logConstraint
	index   map[gp.Key]int
}

// compile maps the flattened system into log space. Every pinned value must
// be strictly positive: GP variables live on the positive orthant.
func compile(sys *model.System, objective gp.Monomial, pinned map[gp.Key]unit.Quantity) (*program, error) {
	p := &program{index: make(map[gp.Key]int)}
	for _, v := range sys.Variables {
		if _, ok := pinned[v.Key()]; ok {
			continue
		}
		p.index[v.Key()] = p.n
		p.keys = append(p.keys, v.Key())
		p.vars = append(p.vars, v)
		p.n++
	}
	for k, q := range pinned {
		if !(q.SI() > 0) {
			return nil, fmt.Errorf("pinned value for %s must be positive, got %s", k, q)
		}
	}

	var err error
	if p.obj, err = p.lower(objective, pinned); err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	p.objDims = objective.Dims()

	for i, c := range sys.Constraints {
		lc := logConstraint{src: i}
		switch c.Op {
		case gp.RelEqual:
			lhs, _ := c.LHS.Monomial()
			rhs, _ := c.RHS.Monomial()
			lc.eq = true
			one, err := p.lower(lhs, pinned)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
			}
			lc.posy = []logMono{one}
			if lc.mono, err = p.lower(rhs, pinned); err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
			}
		case gp.RelLessEq:
			for _, m := range c.LHS.Monos {
				lm, err := p.lower(m, pinned)
				if err != nil {
					return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
				}
				lc.posy = append(lc.posy, lm)
			}
			rhs, _ := c.RHS.Monomial()
			var err error
			if lc.mono, err = p.lower(rhs, pinned); err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
			}
		case gp.RelGreaterEq:
			for _, m := range c.RHS.Monos {
				lm, err := p.lower(m, pinned)
				if err != nil {
					return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
				}
				lc.posy = append(lc.posy, lm)
			}
			lhs, _ := c.LHS.Monomial()
			var err error
			if lc.mono, err = p.lower(lhs, pinned); err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.Label, err)
			}
		}
		p.cons = append(p.cons, lc)
	}
	return p, nil
}

// lower maps one monomial into log space, folding pinned variables into the
// constant term.
func (p *program) lower(m gp.Monomial, pinned map[gp.Key]unit.Quantity) (logMono, error) {
	if !(m.Coeff > 0) {
		return logMono{}, fmt.Errorf("non-positive coefficient %g", m.Coeff)
	}
	out := logMono{c: math.Log(m.Coeff)}
	for _, f := range m.Factors {
		k := f.Var.Key()
		if q, ok := pinned[k]; ok {
			out.c += f.Exp * math.Log(q.SI())
			continue
		}
		i, ok := p.index[k]
		if !ok {
			return logMono{}, fmt.Errorf("variable %s not in system", k)
		}
		out.idx = append(out.idx, i)
		out.exp = append(out.exp, f.Exp)
	}
	return out, nil
}

// residual returns the constraint's log-space violation at y: for equalities
// the absolute residual, for inequalities max(0, logsumexp(posy) - mono).
func (lc logConstraint) residual(y []float64) float64 {
	if lc.eq {
		return math.Abs(lc.posy[0].eval(y) - lc.mono.eval(y))
	}
	g := logSumExp(lc.posy, y) - lc.mono.eval(y)
	if g < 0 {
		return 0
	}
	return g
}

func logSumExp(terms []logMono, y []float64) float64 {
	max := math.Inf(-1)
	vals := make([]float64, len(terms))
	for i, t := range terms {
		vals[i] = t.eval(y)
		if vals[i] > max {
			max = vals[i]
		}
	}
	sum := 0.0
	for _, v := range vals {
		sum += math.Exp(v - max)
	}
	return max + math.Log(sum)
}
