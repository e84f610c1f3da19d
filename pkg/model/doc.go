// Package model implements the composition engine: the rules by which a tree
// of independently-authored sub-models becomes one flat, solvable constraint
// set.
//
// A sub-model is anything implementing Constrainable: it owns variables and
// constraints and zero or more children. Builders construct nodes; the
// Flatten composer walks a tree, checks that every qualified variable name is
// globally unique, and concatenates constraint lists strictly upward. Resolve
// finds a variable by local symbol across a subtree with explicit failure
// modes for missing and ambiguous matches.
//
// The build-and-compose phase is synchronous and single-threaded. No node
// ever mutates another node's state: cross-model references are read-only
// lookups stitched together through explicit equality constraints.
package model
