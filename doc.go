// Package qsimkit implements an exact statevector simulator for small
// quantum circuits, together with a named circuit registry, pure-state
// analysis (density matrix, purity, von Neumann entropy, partial trace),
// an equivalence-preserving circuit optimizer, and builders for common
// structured circuits (variational ansätze and the QFT).
//
// Circuits are built gate-by-gate from a closed catalog of unitaries and
// simulated against a dense complex amplitude vector of length 2^n.
// Qubit q occupies bit 1<<q of the statevector index (qubit 0 is the
// least significant bit); bitstrings are formatted with qubit n-1
// leftmost. Entropies use log base 2.
//
// The Registry is the only shared mutable state and is safe for
// concurrent use. Everything else operates on snapshots and is pure.
//
// Errors:
//
//	ErrNotFound           - unknown circuit name.
//	ErrDuplicateName      - explicit name collides on create.
//	ErrInvalidOperation   - bad gate name, qubit/bit range, arity or params.
//	ErrNoMeasurement      - sampling requested without any measurement.
//	ErrMeasurementPresent - pure-state analysis on a measured circuit.
//	ErrInvalidParameter   - bad shot count, optimization level or topology.
//	ErrNormDrift          - internal invariant breach in the engine.
package qsimkit
