package model

import (
	"github.com/skystack-labs/skygp/pkg/gp"
)

// ownLookup is satisfied by nodes with an indexed own-variable table (every
// *Node). Plain Constrainable implementations fall back to a linear scan.
type ownLookup interface {
	Lookup(symbol string) (*gp.Variable, bool)
}

// Resolve finds the variable with the given local symbol in a model's
// subtree. Resolution order: the model's own declared variables first, then
// every descendant. If no variable matches, Resolve fails with
// *UnresolvedVariableError; if variables in more than one node match, it
// fails with *AmbiguousVariableError and the caller must disambiguate with
// ResolveAt.
func Resolve(from Constrainable, symbol string) (*gp.Variable, error) {
	if v, ok := lookupOwn(from, symbol); ok {
		return v, nil
	}
	matches := collect(from, symbol, nil)
	switch len(matches) {
	case 0:
		return nil, &UnresolvedVariableError{Path: from.Path(), Symbol: symbol}
	case 1:
		return matches[0], nil
	}
	paths := make([]string, len(matches))
	for i, v := range matches {
		paths[i] = v.Path()
	}
	return nil, &AmbiguousVariableError{Symbol: symbol, Paths: paths}
}

// ResolveAt finds the variable with the given symbol owned by the node at
// exactly ownerPath within the subtree.
func ResolveAt(from Constrainable, ownerPath, symbol string) (*gp.Variable, error) {
	node := findNode(from, ownerPath)
	if node == nil {
		return nil, &UnresolvedVariableError{Path: ownerPath, Symbol: symbol}
	}
	if v, ok := lookupOwn(node, symbol); ok {
		return v, nil
	}
	return nil, &UnresolvedVariableError{Path: ownerPath, Symbol: symbol}
}

func lookupOwn(c Constrainable, symbol string) (*gp.Variable, bool) {
	if idx, ok := c.(ownLookup); ok {
		return idx.Lookup(symbol)
	}
	for _, v := range c.Variables() {
		if v.Symbol() == symbol {
			return v, true
		}
	}
	return nil, false
}

func collect(c Constrainable, symbol string, acc []*gp.Variable) []*gp.Variable {
	if v, ok := lookupOwn(c, symbol); ok {
		acc = append(acc, v)
	}
	for _, child := range c.Children() {
		acc = collect(child, symbol, acc)
	}
	return acc
}

func findNode(c Constrainable, path string) Constrainable {
	if c.Path() == path {
		return c
	}
	for _, child := range c.Children() {
		if found := findNode(child, path); found != nil {
			return found
		}
	}
	return nil
}
