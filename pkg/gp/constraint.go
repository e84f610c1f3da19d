package gp

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/unit"
)

// Relation is the comparison operator of a constraint.
type Relation int

// Relation constants.
const (
	RelEqual Relation = iota
	RelLessEq
	RelGreaterEq
)

func (r Relation) String() string {
	switch r {
	case RelEqual:
		return "=="
	case RelLessEq:
		return "<="
	case RelGreaterEq:
		return ">="
	}
	return "?"
}

// Constraint is a GP-form relation between posynomial expressions. Valid
// forms are monomial == monomial, posynomial <= monomial, and
// monomial >= posynomial; anything else is rejected at construction with a
// *FormError. Constraints are immutable once built.
type Constraint struct {
	Op    Relation
	LHS   Posynomial
	RHS   Posynomial
	Label string
}

// FormError reports a constraint that is not expressible in
// geometric-programming form.
type FormError struct {
	Label  string
	Reason string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("constraint %q is not GP-compatible: %s", e.Label, e.Reason)
}

// Equal builds a monomial equality constraint. Both sides must share
// dimensions.
func Equal(label string, lhs, rhs Monomial) (Constraint, error) {
	if err := checkDims(label, lhs.Dims(), rhs.Dims()); err != nil {
		return Constraint{}, err
	}
	if err := checkPositive(label, lhs, rhs); err != nil {
		return Constraint{}, err
	}
	return Constraint{Op: RelEqual, LHS: lhs.Posy(), RHS: rhs.Posy(), Label: label}, nil
}

// LessEq builds posynomial <= monomial.
func LessEq(label string, lhs Posynomial, rhs Monomial) (Constraint, error) {
	if err := checkDims(label, lhs.Dims(), rhs.Dims()); err != nil {
		return Constraint{}, err
	}
	if err := checkPositive(label, lhs.Monos...); err != nil {
		return Constraint{}, err
	}
	if err := checkPositive(label, rhs); err != nil {
		return Constraint{}, err
	}
	return Constraint{Op: RelLessEq, LHS: lhs, RHS: rhs.Posy(), Label: label}, nil
}

// GreaterEq builds monomial >= posynomial.
func GreaterEq(label string, lhs Monomial, rhs Posynomial) (Constraint, error) {
	if err := checkDims(label, lhs.Dims(), rhs.Dims()); err != nil {
		return Constraint{}, err
	}
	if err := checkPositive(label, rhs.Monos...); err != nil {
		return Constraint{}, err
	}
	if err := checkPositive(label, lhs); err != nil {
		return Constraint{}, err
	}
	return Constraint{Op: RelGreaterEq, LHS: lhs.Posy(), RHS: rhs, Label: label}, nil
}

// Keys returns the qualified names of every variable referenced by the
// constraint, deduplicated.
func (c Constraint) Keys() []Key {
	seen := make(map[Key]struct{})
	var keys []Key
	for _, p := range []Posynomial{c.LHS, c.RHS} {
		for _, m := range p.Monos {
			for _, f := range m.Factors {
				k := f.Var.Key()
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					keys = append(keys, k)
				}
			}
		}
	}
	return keys
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.LHS, c.Op, c.RHS)
}

func checkDims(label string, lhs, rhs unit.Dims) error {
	if !lhs.Equal(rhs) {
		return &UnitMismatchError{Op: fmt.Sprintf("constraint %q", label), Want: lhs, Got: rhs}
	}
	return nil
}

func checkPositive(label string, terms ...Monomial) error {
	for _, m := range terms {
		if !(m.Coeff > 0) {
			return &FormError{Label: label, Reason: fmt.Sprintf("non-positive coefficient %g in %s", m.Coeff, m)}
		}
	}
	return nil
}

// Substitutions pin free variables to fixed values for one particular solve
// without altering the model's structural definition.
type Substitutions map[Key]unit.Quantity

// Set records a substitution and returns the map for chaining.
func (s Substitutions) Set(k Key, q unit.Quantity) Substitutions {
	s[k] = q
	return s
}

// Merge copies every entry of o into s. Later entries win.
func (s Substitutions) Merge(o Substitutions) Substitutions {
	for k, q := range o {
		s[k] = q
	}
	return s
}
