package gp

import (
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Key is a variable's globally unique qualified name: the owning model's tree
// path plus the variable's local symbol. Two variables with the same symbol in
// different branches of the tree have distinct Keys.
type Key struct {
	Path   string
	Symbol string
}

func (k Key) String() string {
	if k.Path == "" {
		return k.Symbol
	}
	return k.Path + "." + k.Symbol
}

// Variable is a named quantity slot owned by exactly one model node. A
// variable either carries a fixed value (a parameter) or is free (a decision
// variable to be solved for). Variables are immutable after construction;
// pinning a free variable for one solve happens through Substitutions, never
// by mutating the variable.
type Variable struct {
	key   Key
	unit  unit.Unit
	desc  string
	value *unit.Quantity
}

// NewVariable declares a free variable.
func NewVariable(path, symbol string, u unit.Unit, desc string) *Variable {
	return &Variable{key: Key{Path: path, Symbol: symbol}, unit: u, desc: desc}
}

// NewConstant declares a fixed variable (a parameter). The variable's unit is
// the value's unit.
func NewConstant(path, symbol string, q unit.Quantity, desc string) *Variable {
	return &Variable{key: Key{Path: path, Symbol: symbol}, unit: q.Unit(), desc: desc, value: &q}
}

// Key returns the variable's qualified name.
func (v *Variable) Key() Key { return v.key }

// Symbol returns the variable's local symbol.
func (v *Variable) Symbol() string { return v.key.Symbol }

// Path returns the owning model's tree path.
func (v *Variable) Path() string { return v.key.Path }

// Unit returns the variable's declared unit.
func (v *Variable) Unit() unit.Unit { return v.unit }

// Desc returns the human-readable description.
func (v *Variable) Desc() string { return v.desc }

// Fixed returns the build-time value and true for parameters, or a zero
// quantity and false for free variables.
func (v *Variable) Fixed() (unit.Quantity, bool) {
	if v.value == nil {
		return unit.Quantity{}, false
	}
	return *v.value, true
}

// Mon lifts the variable into a monomial with coefficient 1 and exponent 1.
func (v *Variable) Mon() Monomial {
	return Monomial{Coeff: 1, Factors: []Factor{{Var: v, Exp: 1}}}
}

// Pow lifts the variable into a monomial raised to a real power.
func (v *Variable) Pow(p float64) Monomial {
	return Monomial{Coeff: 1, Factors: []Factor{{Var: v, Exp: p}}}
}
