package model

import (
	"github.com/skystack-labs/skygp/pkg/gp"
)

// System is the flattened output of composing a model tree: every variable
// under one registry of globally unique qualified names, and every constraint
// in one list. The solver treats the constraint list as unordered; the order
// here (each node's own constraints, then its children in declaration order)
// matters only for diagnostics.
type System struct {
	Variables   []*gp.Variable
	Constraints []gp.Constraint
	byKey       map[gp.Key]*gp.Variable
}

// Var returns the variable registered under the qualified key.
func (s *System) Var(key gp.Key) (*gp.Variable, bool) {
	v, ok := s.byKey[key]
	return v, ok
}

// Flatten composes a model tree into a System. It fails with *CollisionError
// if two nodes share an instance path, and with *DuplicateSymbolError if two
// variables collide under one qualified name. Flattening is pure
// concatenation: no node's constraint list is ever modified.
func Flatten(roots ...Constrainable) (*System, error) {
	s := &System{byKey: make(map[gp.Key]*gp.Variable)}
	paths := make(map[string]struct{})
	for _, root := range roots {
		if err := s.walk(root, paths); err != nil {
			return nil, err
		}
	}
	// Constraints may borrow variables from nodes composed elsewhere in the
	// same call, so referenced-key checks run after the whole walk.
	for _, c := range s.Constraints {
		for _, k := range c.Keys() {
			if _, ok := s.byKey[k]; !ok {
				return nil, &UnresolvedVariableError{Path: k.Path, Symbol: k.Symbol}
			}
		}
	}
	return s, nil
}

func (s *System) walk(c Constrainable, paths map[string]struct{}) error {
	if _, seen := paths[c.Path()]; seen {
		return &CollisionError{Path: c.Path()}
	}
	paths[c.Path()] = struct{}{}

	for _, v := range c.Variables() {
		if _, dup := s.byKey[v.Key()]; dup {
			return &DuplicateSymbolError{Path: v.Path(), Symbol: v.Symbol()}
		}
		s.byKey[v.Key()] = v
		s.Variables = append(s.Variables, v)
	}
	s.Constraints = append(s.Constraints, c.Constraints()...)
	for _, child := range c.Children() {
		if err := s.walk(child, paths); err != nil {
			return err
		}
	}
	return nil
}
