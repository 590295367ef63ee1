package qsimkit

import (
	"fmt"
	"math"
)

// Entanglement patterns accepted by BuildVariational.
const (
	EntangleFull     = "full"
	EntangleLinear   = "linear"
	EntangleCircular = "circular"
)

// BuildVariational constructs a hardware-efficient variational ansatz:
// each layer applies ry then rz to every qubit, initialized at angle
// zero, followed by a cx entangling layer in the chosen pattern. It
// returns the circuit and its parameter count, numQubits*2*layers.
func BuildVariational(name string, numQubits, layers int, entanglement string) (*Circuit, int, error) {
	if layers < 1 {
		return nil, 0, fmt.Errorf("%w: layers %d must be positive", ErrInvalidParameter, layers)
	}
	c, err := NewCircuit(name, numQubits, -1)
	if err != nil {
		return nil, 0, err
	}
	var pairs [][2]int
	switch entanglement {
	case EntangleFull:
		for i := 0; i < numQubits; i++ {
			for j := i + 1; j < numQubits; j++ {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	case EntangleLinear:
		for i := 0; i+1 < numQubits; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}
	case EntangleCircular:
		for i := 0; i+1 < numQubits; i++ {
			pairs = append(pairs, [2]int{i, i + 1})
		}
		if numQubits > 2 {
			pairs = append(pairs, [2]int{numQubits - 1, 0})
		}
	default:
		return nil, 0, fmt.Errorf("%w: entanglement %q (want full, linear or circular)",
			ErrInvalidParameter, entanglement)
	}

	var ops []Operation
	for l := 0; l < layers; l++ {
		for q := 0; q < numQubits; q++ {
			ops = append(ops,
				Unitary("ry", []int{q}, 0),
				Unitary("rz", []int{q}, 0),
			)
		}
		for _, p := range pairs {
			ops = append(ops, Unitary("cx", []int{p[0], p[1]}))
		}
	}
	if err := c.Append(ops...); err != nil {
		return nil, 0, err
	}
	return c, numQubits * 2 * layers, nil
}

// BuildQFT constructs the quantum Fourier transform over all qubits,
// including the final qubit-reversal swaps. The inverse transform is the
// forward operation list reversed with negated controlled-phase angles,
// so a transform followed by its inverse is the identity.
func BuildQFT(name string, numQubits int, inverse bool) (*Circuit, error) {
	c, err := NewCircuit(name, numQubits, -1)
	if err != nil {
		return nil, err
	}
	var ops []Operation
	for k := numQubits - 1; k >= 0; k-- {
		ops = append(ops, Unitary("h", []int{k}))
		for j := k - 1; j >= 0; j-- {
			angle := math.Pi / float64(int(1)<<(k-j))
			ops = append(ops, Unitary("cp", []int{j, k}, angle))
		}
	}
	for i := 0; i < numQubits/2; i++ {
		ops = append(ops, Unitary("swap", []int{i, numQubits - 1 - i}))
	}
	if inverse {
		rev := make([]Operation, len(ops))
		for i, op := range ops {
			r := op
			if op.Gate == "cp" {
				r = Unitary("cp", op.Qubits, -op.Params[0])
			}
			rev[len(ops)-1-i] = r
		}
		ops = rev
	}
	if err := c.Append(ops...); err != nil {
		return nil, err
	}
	return c, nil
}
