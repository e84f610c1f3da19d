package model

import (
	"fmt"
	"strings"
)

// DuplicateSymbolError reports two variables colliding under one owner path.
type DuplicateSymbolError struct {
	Path   string
	Symbol string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate symbol %q under %q", e.Symbol, e.Path)
}

// UnresolvedVariableError reports a cross-model lookup with no match.
type UnresolvedVariableError struct {
	Path   string
	Symbol string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("no variable %q found under %q", e.Symbol, e.Path)
}

// AmbiguousVariableError reports a cross-model lookup with more than one
// candidate and no owner-path disambiguation from the caller.
type AmbiguousVariableError struct {
	Symbol string
	Paths  []string
}

func (e *AmbiguousVariableError) Error() string {
	return fmt.Sprintf("variable %q is ambiguous: owned by %s", e.Symbol, strings.Join(e.Paths, ", "))
}

// CollisionError reports two nodes flattened under the same instance path.
type CollisionError struct {
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("two model nodes share the instance path %q", e.Path)
}
