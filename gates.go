package qsimkit

import (
	"math"
	"math/cmplx"
)

// GateSpec describes one entry of the closed gate catalog: how many qubits
// the gate acts on, how many real parameters it takes, and how to produce
// its unitary matrix.
//
// Matrix functions are pure and total over all real parameter values. The
// returned matrix is 2^Arity x 2^Arity and indexed with the first listed
// target qubit as the most significant matrix bit.
type GateSpec struct {
	Name       string
	Arity      int
	ParamCount int
	Matrix     func(params []float64) [][]complex128
}

// LookupGate resolves a gate name against the catalog.
func LookupGate(name string) (GateSpec, bool) {
	spec, ok := gateCatalog[name]
	return spec, ok
}

// GateNames returns the catalog's gate names in a fixed order.
func GateNames() []string {
	names := make([]string, len(gateOrder))
	copy(names, gateOrder)
	return names
}

const invSqrt2 = 1.0 / math.Sqrt2

// fixed returns a Matrix func for a parameterless gate.
func fixed(m [][]complex128) func([]float64) [][]complex128 {
	return func([]float64) [][]complex128 { return m }
}

var gateOrder = []string{
	"h", "x", "y", "z", "s", "sdg", "t", "tdg",
	"rx", "ry", "rz", "u",
	"cx", "cz", "ch", "swap",
	"rxx", "ryy", "rzz", "cp",
}

var gateCatalog = map[string]GateSpec{
	"h": {Name: "h", Arity: 1, Matrix: fixed([][]complex128{
		{complex(invSqrt2, 0), complex(invSqrt2, 0)},
		{complex(invSqrt2, 0), complex(-invSqrt2, 0)},
	})},
	"x": {Name: "x", Arity: 1, Matrix: fixed([][]complex128{
		{0, 1},
		{1, 0},
	})},
	"y": {Name: "y", Arity: 1, Matrix: fixed([][]complex128{
		{0, -1i},
		{1i, 0},
	})},
	"z": {Name: "z", Arity: 1, Matrix: fixed([][]complex128{
		{1, 0},
		{0, -1},
	})},
	"s": {Name: "s", Arity: 1, Matrix: fixed([][]complex128{
		{1, 0},
		{0, 1i},
	})},
	"sdg": {Name: "sdg", Arity: 1, Matrix: fixed([][]complex128{
		{1, 0},
		{0, -1i},
	})},
	"t": {Name: "t", Arity: 1, Matrix: fixed([][]complex128{
		{1, 0},
		{0, cmplx.Exp(complex(0, math.Pi/4))},
	})},
	"tdg": {Name: "tdg", Arity: 1, Matrix: fixed([][]complex128{
		{1, 0},
		{0, cmplx.Exp(complex(0, -math.Pi/4))},
	})},

	"rx": {Name: "rx", Arity: 1, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		c := complex(math.Cos(p[0]/2), 0)
		js := complex(0, -math.Sin(p[0]/2))
		return [][]complex128{
			{c, js},
			{js, c},
		}
	}},
	"ry": {Name: "ry", Arity: 1, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		c := complex(math.Cos(p[0]/2), 0)
		s := complex(math.Sin(p[0]/2), 0)
		return [][]complex128{
			{c, -s},
			{s, c},
		}
	}},
	"rz": {Name: "rz", Arity: 1, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		phase := cmplx.Exp(complex(0, p[0]/2))
		return [][]complex128{
			{cmplx.Conj(phase), 0},
			{0, phase},
		}
	}},
	// u(theta, phi, lambda) is the general single-qubit unitary; every other
	// single-qubit catalog entry is a special case of it.
	"u": {Name: "u", Arity: 1, ParamCount: 3, Matrix: func(p []float64) [][]complex128 {
		theta, phi, lambda := p[0], p[1], p[2]
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return [][]complex128{
			{c, -cmplx.Exp(complex(0, lambda)) * s},
			{cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lambda)) * c},
		}
	}},

	// Two-qubit matrices are indexed |q_first q_second>, first qubit as the
	// high matrix bit. For cx and cp the first listed qubit is the control.
	"cx": {Name: "cx", Arity: 2, Matrix: fixed([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})},
	"cz": {Name: "cz", Arity: 2, Matrix: fixed([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	})},
	"ch": {Name: "ch", Arity: 2, Matrix: fixed([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, complex(invSqrt2, 0), complex(invSqrt2, 0)},
		{0, 0, complex(invSqrt2, 0), complex(-invSqrt2, 0)},
	})},
	"swap": {Name: "swap", Arity: 2, Matrix: fixed([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})},

	"rxx": {Name: "rxx", Arity: 2, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		c := complex(math.Cos(p[0]/2), 0)
		js := complex(0, -math.Sin(p[0]/2))
		return [][]complex128{
			{c, 0, 0, js},
			{0, c, js, 0},
			{0, js, c, 0},
			{js, 0, 0, c},
		}
	}},
	"ryy": {Name: "ryy", Arity: 2, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		c := complex(math.Cos(p[0]/2), 0)
		js := complex(0, -math.Sin(p[0]/2))
		return [][]complex128{
			{c, 0, 0, -js},
			{0, c, js, 0},
			{0, js, c, 0},
			{-js, 0, 0, c},
		}
	}},
	"rzz": {Name: "rzz", Arity: 2, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		pos := cmplx.Exp(complex(0, p[0]/2))
		neg := cmplx.Conj(pos)
		return [][]complex128{
			{neg, 0, 0, 0},
			{0, pos, 0, 0},
			{0, 0, pos, 0},
			{0, 0, 0, neg},
		}
	}},
	"cp": {Name: "cp", Arity: 2, ParamCount: 1, Matrix: func(p []float64) [][]complex128 {
		return [][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, cmplx.Exp(complex(0, p[0]))},
		}
	}},
}

// selfInverseGates are catalog entries equal to their own inverse.
var selfInverseGates = map[string]bool{
	"h": true, "x": true, "y": true, "z": true,
	"cx": true, "cz": true, "swap": true,
}

// inversePairs maps a gate to its exact-inverse catalog partner.
var inversePairs = map[string]string{
	"s": "sdg", "sdg": "s",
	"t": "tdg", "tdg": "t",
}

// rotationGates take a single angle and compose by angle addition on a
// fixed axis; rz(a) then rz(b) equals rz(a+b), likewise for the others.
var rotationGates = map[string]bool{
	"rx": true, "ry": true, "rz": true,
	"rxx": true, "ryy": true, "rzz": true,
	"cp": true,
}
