package gp

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skystack-labs/skygp/pkg/unit"
)

// Factor is one variable raised to a real power inside a monomial.
type Factor struct {
	Var *Variable
	Exp float64
}

// Monomial is a positive coefficient times a product of variables raised to
// real powers. The coefficient is a pure number; every unit-bearing constant
// in a model is declared as a fixed Variable instead, so dimensions are
// carried entirely by the factors.
type Monomial struct {
	Coeff   float64
	Factors []Factor
}

// Mon builds a monomial from a coefficient and variables, each with
// exponent 1.
func Mon(coeff float64, vars ...*Variable) Monomial {
	m := Monomial{Coeff: coeff}
	for _, v := range vars {
		m.Factors = append(m.Factors, Factor{Var: v, Exp: 1})
	}
	return m.canonical()
}

// canonical merges repeated variables and drops zero exponents.
func (m Monomial) canonical() Monomial {
	exps := make(map[Key]float64, len(m.Factors))
	vars := make(map[Key]*Variable, len(m.Factors))
	order := make([]Key, 0, len(m.Factors))
	for _, f := range m.Factors {
		k := f.Var.Key()
		if _, seen := exps[k]; !seen {
			order = append(order, k)
			vars[k] = f.Var
		}
		exps[k] += f.Exp
	}
	out := Monomial{Coeff: m.Coeff}
	for _, k := range order {
		if exps[k] == 0 {
			continue
		}
		out.Factors = append(out.Factors, Factor{Var: vars[k], Exp: exps[k]})
	}
	return out
}

// Mul returns the product of two monomials. Units compose and never fail.
func (m Monomial) Mul(o Monomial) Monomial {
	out := Monomial{Coeff: m.Coeff * o.Coeff}
	out.Factors = append(out.Factors, m.Factors...)
	out.Factors = append(out.Factors, o.Factors...)
	return out.canonical()
}

// Div returns the quotient of two monomials.
func (m Monomial) Div(o Monomial) Monomial {
	return m.Mul(o.Pow(-1))
}

// Pow raises the monomial to a real power.
func (m Monomial) Pow(p float64) Monomial {
	out := Monomial{Coeff: powf(m.Coeff, p)}
	for _, f := range m.Factors {
		out.Factors = append(out.Factors, Factor{Var: f.Var, Exp: f.Exp * p})
	}
	return out.canonical()
}

// Scale multiplies the coefficient by a pure number.
func (m Monomial) Scale(c float64) Monomial {
	out := m
	out.Coeff = m.Coeff * c
	return out
}

// Dims returns the monomial's dimension vector.
func (m Monomial) Dims() unit.Dims {
	d := unit.Dims{}
	for _, f := range m.Factors {
		d = d.Mul(f.Var.Unit().Dims.Pow(f.Exp))
	}
	return d
}

// Posy lifts the monomial into a single-term posynomial.
func (m Monomial) Posy() Posynomial {
	return Posynomial{Monos: []Monomial{m}}
}

// Keys returns the qualified names of the monomial's variables, sorted.
func (m Monomial) Keys() []Key {
	keys := make([]Key, 0, len(m.Factors))
	for _, f := range m.Factors {
		keys = append(keys, f.Var.Key())
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func (m Monomial) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g", m.Coeff)
	for _, f := range m.Factors {
		if f.Exp == 1 {
			fmt.Fprintf(&b, "·%s", f.Var.Key())
		} else {
			fmt.Fprintf(&b, "·%s^%g", f.Var.Key(), f.Exp)
		}
	}
	return b.String()
}

// Posynomial is a sum of monomials. All terms of a valid posynomial share one
// dimension vector; Sum enforces this.
type Posynomial struct {
	Monos []Monomial
}

// Sum builds a posynomial from monomial terms. All terms must share the same
// dimensions; a mixed-dimension sum fails with *UnitMismatchError.
func Sum(terms ...Monomial) (Posynomial, error) {
	if len(terms) == 0 {
		return Posynomial{}, fmt.Errorf("empty posynomial sum")
	}
	want := terms[0].Dims()
	for _, t := range terms[1:] {
		if !t.Dims().Equal(want) {
			return Posynomial{}, &UnitMismatchError{
				Op:   "sum",
				Want: want,
				Got:  t.Dims(),
				Expr: t.String(),
			}
		}
	}
	out := Posynomial{Monos: make([]Monomial, len(terms))}
	copy(out.Monos, terms)
	return out, nil
}

// Dims returns the posynomial's dimension vector.
func (p Posynomial) Dims() unit.Dims {
	if len(p.Monos) == 0 {
		return unit.Dims{}
	}
	return p.Monos[0].Dims()
}

// Monomial returns the single term and true if the posynomial has exactly one
// term.
func (p Posynomial) Monomial() (Monomial, bool) {
	if len(p.Monos) == 1 {
		return p.Monos[0], true
	}
	return Monomial{}, false
}

func (p Posynomial) String() string {
	parts := make([]string, len(p.Monos))
	for i, m := range p.Monos {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}

// UnitMismatchError reports incompatible dimensions in expression or
// constraint construction.
type UnitMismatchError struct {
	Op   string
	Want unit.Dims
	Got  unit.Dims
	Expr string
}

func (e *UnitMismatchError) Error() string {
	if e.Expr != "" {
		return fmt.Sprintf("unit mismatch in %s: %s has dims %s, want %s", e.Op, e.Expr, e.Got, e.Want)
	}
	return fmt.Sprintf("unit mismatch in %s: got %s, want %s", e.Op, e.Got, e.Want)
}

func powf(x, p float64) float64 {
	switch p {
	case 1:
		return x
	case -1:
		return 1 / x
	}
	// Positive bases only in GP, so math.Pow is safe.
	return math.Pow(x, p)
}
