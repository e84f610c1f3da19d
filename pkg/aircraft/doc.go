// Package aircraft models an electric rotorcraft and its missions as a tree
// of composable sub-models for geometric-programming sizing.
//
// Persistent design variables (rotor geometry, battery capacity) live on
// long-lived subsystem models under the Aircraft node. Condition-specific
// variables (instantaneous power, energy, time) live on short-lived
// performance models instantiated once per mission segment; the two are
// stitched together exclusively through explicit equality constraints
// discovered via model.Resolve, never through shared mutable state.
//
// All study parameters arrive as explicit, validated constructor arguments —
// nothing is read from ambient configuration.
package aircraft
