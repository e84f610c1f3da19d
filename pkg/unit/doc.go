// Package unit defines the shared dimensional language of the SkyGP system.
//
// This package contains:
//   - Dims, a dimension vector over mass, length and time
//   - Unit, a named scale of a dimension vector
//   - Quantity, an immutable value tagged with a Unit
//
// The Golden Rule: pkg/unit imports ONLY stdlib.
// All other packages depend on unit, not the reverse.
package unit
