package model

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Builder constructs one model node: it declares the node's own variables,
// accumulates constraints, and attaches children. The first error sticks and
// is returned by Node(); later calls become no-ops, so build functions read
// linearly without per-call error plumbing. A failed build aborts the whole
// problem: no partial node is ever composed.
type Builder struct {
	node *Node
	err  error
}

// NewBuilder starts a node at the given instance path.
func NewBuilder(path string) *Builder {
	return &Builder{node: &Node{
		path:     path,
		bySymbol: make(map[string]*gp.Variable),
	}}
}

// Path returns the node's instance path.
func (b *Builder) Path() string { return b.node.path }

// Var declares a free variable. Declaring a symbol twice under one node fails
// with *DuplicateSymbolError.
func (b *Builder) Var(symbol string, u unit.Unit, desc string) *gp.Variable {
	if existing, ok := b.node.bySymbol[symbol]; ok {
		b.fail(&DuplicateSymbolError{Path: b.node.path, Symbol: symbol})
		return existing
	}
	v := gp.NewVariable(b.node.path, symbol, u, desc)
	b.node.bySymbol[symbol] = v
	b.node.vars = append(b.node.vars, v)
	return v
}

// Const declares a fixed variable (a parameter) holding q.
func (b *Builder) Const(symbol string, q unit.Quantity, desc string) *gp.Variable {
	if existing, ok := b.node.bySymbol[symbol]; ok {
		b.fail(&DuplicateSymbolError{Path: b.node.path, Symbol: symbol})
		return existing
	}
	v := gp.NewConstant(b.node.path, symbol, q, desc)
	b.node.bySymbol[symbol] = v
	b.node.vars = append(b.node.vars, v)
	return v
}

// Lit is Const for a bare magnitude and unit.
func (b *Builder) Lit(symbol string, v float64, u unit.Unit, desc string) *gp.Variable {
	return b.Const(symbol, unit.New(v, u), desc)
}

// Equal adds a monomial equality constraint.
func (b *Builder) Equal(label string, lhs, rhs gp.Monomial) {
	c, err := gp.Equal(label, lhs, rhs)
	if err != nil {
		b.fail(err)
		return
	}
	b.node.cons = append(b.node.cons, c)
}

// LessEq adds posynomial <= monomial.
func (b *Builder) LessEq(label string, lhs gp.Posynomial, rhs gp.Monomial) {
	c, err := gp.LessEq(label, lhs, rhs)
	if err != nil {
		b.fail(err)
		return
	}
	b.node.cons = append(b.node.cons, c)
}

// GreaterEq adds monomial >= posynomial.
func (b *Builder) GreaterEq(label string, lhs gp.Monomial, rhs gp.Posynomial) {
	c, err := gp.GreaterEq(label, lhs, rhs)
	if err != nil {
		b.fail(err)
		return
	}
	b.node.cons = append(b.node.cons, c)
}

// Add appends an already-built constraint, recording its construction error
// if any. Pairs with helpers that return (gp.Constraint, error).
func (b *Builder) Add(c gp.Constraint, err error) {
	if err != nil {
		b.fail(err)
		return
	}
	b.node.cons = append(b.node.cons, c)
}

// Sum builds a posynomial, recording any dimension mismatch on the builder.
func (b *Builder) Sum(terms ...gp.Monomial) gp.Posynomial {
	p, err := gp.Sum(terms...)
	if err != nil {
		b.fail(err)
	}
	return p
}

// Child attaches an already-built child node.
func (b *Builder) Child(c Constrainable) {
	if c == nil {
		b.fail(fmt.Errorf("nil child under %q", b.node.path))
		return
	}
	b.node.children = append(b.node.children, c)
}

// Resolve finds a variable by symbol in a referenced node's subtree,
// recording the failure on the builder. Used to stitch a performance model's
// condition-specific variables to a design model's persistent variables.
func (b *Builder) Resolve(from Constrainable, symbol string) *gp.Variable {
	v, err := Resolve(from, symbol)
	if err != nil {
		b.fail(err)
		// Placeholder keeps downstream expression code total; the sticky
		// error still aborts the build.
		return gp.NewVariable(b.node.path, symbol, unit.Dimensionless, "unresolved")
	}
	return v
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error { return b.err }

// Node finalizes the build, returning the first recorded error if any.
func (b *Builder) Node() (*Node, error) {
	if b.err != nil {
		return nil, fmt.Errorf("building %q: %w", b.node.path, b.err)
	}
	return b.node, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
