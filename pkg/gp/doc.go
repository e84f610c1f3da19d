// Package gp defines the geometric-programming algebra of the SkyGP system.
//
// This package contains:
//   - Variable, a named quantity slot with a globally unique qualified Key
//   - Monomial and Posynomial expression values
//   - Constraint, a GP-form relation between expressions
//   - Substitutions, values pinned onto free variables at solve time
//
// Expressions are immutable values: every operation returns a new expression
// and never mutates its operands. Multiplication, division and powers compose
// units algebraically and cannot fail; sums and relations require matching
// dimensions and fail with *UnitMismatchError.
//
// The Golden Rule: pkg/gp imports ONLY pkg/unit and stdlib.
package gp
