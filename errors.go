package qsimkit

import "errors"

// Sentinel errors for circuit construction, simulation and analysis.
// Call sites wrap these with the offending identifier or value, so use
// errors.Is to classify.
var (
	// ErrNotFound indicates the registry holds no circuit with the given name.
	ErrNotFound = errors.New("qsimkit: circuit not found")

	// ErrDuplicateName indicates an explicit circuit name is already taken.
	ErrDuplicateName = errors.New("qsimkit: circuit name already exists")

	// ErrInvalidOperation indicates an operation that cannot be appended:
	// unknown gate, qubit or classical bit out of range, arity or parameter
	// count mismatch, duplicate target qubits, or a unitary appended after
	// a measurement.
	ErrInvalidOperation = errors.New("qsimkit: invalid operation")

	// ErrNoMeasurement indicates a shot-based run was requested on a circuit
	// that never measures.
	ErrNoMeasurement = errors.New("qsimkit: circuit has no measurement")

	// ErrMeasurementPresent indicates pure-state analysis was requested on a
	// circuit containing a measurement.
	ErrMeasurementPresent = errors.New("qsimkit: circuit contains measurement")

	// ErrInvalidParameter indicates an out-of-range caller parameter such as
	// a non-positive shot count, an optimization level outside 0..3, or an
	// unknown entanglement pattern.
	ErrInvalidParameter = errors.New("qsimkit: invalid parameter")

	// ErrNormDrift indicates the statevector norm drifted beyond tolerance
	// during simulation. This is an engine bug, not a bad request.
	ErrNormDrift = errors.New("qsimkit: statevector norm drift")
)
