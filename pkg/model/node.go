package model

import (
	"github.com/skystack-labs/skygp/pkg/gp"
)

// Constrainable is anything that contributes variables and constraints to a
// model tree. Independent types implement it and are combined through the
// composer, not through inheritance chains.
type Constrainable interface {
	// Path is the node's instance path in the tree. Two nodes of the same
	// type instantiated at different positions carry distinct paths.
	Path() string
	// Variables lists the variables this node owns, in declaration order.
	Variables() []*gp.Variable
	// Constraints lists the node's own constraints, in declaration order.
	// The list is never mutated after the node is built.
	Constraints() []gp.Constraint
	// Children lists owned child nodes, in declaration order.
	Children() []Constrainable
}

// Node is the standard Constrainable produced by a Builder. Domain model
// types embed *Node and add typed accessors for their variables.
type Node struct {
	path     string
	vars     []*gp.Variable
	bySymbol map[string]*gp.Variable
	cons     []gp.Constraint
	children []Constrainable
}

// Path implements Constrainable.
func (n *Node) Path() string { return n.path }

// Variables implements Constrainable.
func (n *Node) Variables() []*gp.Variable { return n.vars }

// Constraints implements Constrainable.
func (n *Node) Constraints() []gp.Constraint { return n.cons }

// Children implements Constrainable.
func (n *Node) Children() []Constrainable { return n.children }

// Lookup returns the node's own variable with the given local symbol.
func (n *Node) Lookup(symbol string) (*gp.Variable, bool) {
	v, ok := n.bySymbol[symbol]
	return v, ok
}

// JoinPath appends a child name to a parent path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
