package qsimkit

import (
	"fmt"
	"math"
)

// OptimizeReport compares a circuit before and after optimization.
type OptimizeReport struct {
	Level          int `json:"level"`
	OriginalGates  int `json:"original_gates"`
	OptimizedGates int `json:"optimized_gates"`
	OriginalDepth  int `json:"original_depth"`
	OptimizedDepth int `json:"optimized_depth"`
}

// Optimize rewrites the circuit at the given level and returns the new
// circuit with a reduction report. Levels are cumulative:
//
//	0  no rewriting
//	1  single-qubit inverse-pair cancellation
//	2  adds two-qubit gate cancellation
//	3  adds same-axis rotation merging
//
// Passes repeat until no rule fires, so optimizing an already optimized
// circuit changes nothing.
func Optimize(c *Circuit, level int) (*Circuit, *OptimizeReport, error) {
	if level < 0 || level > 3 {
		return nil, nil, fmt.Errorf("%w: optimization level %d outside [0, 3]",
			ErrInvalidParameter, level)
	}
	out := c.Clone()
	if level >= 1 {
		for {
			changed := false
			if cancelSingleQubitPairs(out) {
				changed = true
			}
			if level >= 2 && cancelTwoQubitPairs(out) {
				changed = true
			}
			if level >= 3 && mergeRotations(out) {
				changed = true
			}
			if !changed {
				break
			}
		}
	}
	report := &OptimizeReport{
		Level:          level,
		OriginalGates:  c.Size(),
		OptimizedGates: out.Size(),
		OriginalDepth:  c.Depth(),
		OptimizedDepth: out.Depth(),
	}
	return out, report, nil
}

// angleTolerance bounds how far a merged rotation angle may sit from a
// multiple of 2*pi and still vanish.
const angleTolerance = 1e-12

func angleIsFullTurn(theta float64) bool {
	r := math.Abs(math.Mod(theta, 2*math.Pi))
	return r < angleTolerance || 2*math.Pi-r < angleTolerance
}

// nextOnQubit returns the index of the first operation after i that
// touches qubit q, or -1.
func nextOnQubit(c *Circuit, i, q int) int {
	for j := i + 1; j < len(c.Ops); j++ {
		if c.Ops[j].touches(q) {
			return j
		}
	}
	return -1
}

// removePair deletes operations i and j (i < j) from the circuit.
func removePair(c *Circuit, i, j int) {
	c.Ops = append(c.Ops[:j], c.Ops[j+1:]...)
	c.Ops = append(c.Ops[:i], c.Ops[i+1:]...)
}

// cancelSingleQubitPairs removes adjacent-on-their-qubit pairs of
// single-qubit gates that multiply to identity. Operations on other
// qubits may sit between the pair. Returns whether anything changed.
func cancelSingleQubitPairs(c *Circuit) bool {
	changed := false
	for i := 0; i < len(c.Ops); i++ {
		a := c.Ops[i]
		if a.IsMeasurement() || len(a.Qubits) != 1 {
			continue
		}
		j := nextOnQubit(c, i, a.Qubits[0])
		if j < 0 {
			continue
		}
		b := c.Ops[j]
		if b.IsMeasurement() || len(b.Qubits) != 1 {
			continue
		}
		if !singleQubitInverse(a, b) {
			continue
		}
		removePair(c, i, j)
		changed = true
		i--
	}
	return changed
}

// singleQubitInverse reports whether b undoes a on the shared qubit.
func singleQubitInverse(a, b Operation) bool {
	switch {
	case selfInverseGates[a.Gate]:
		return b.Gate == a.Gate
	case inversePairs[a.Gate] != "":
		return b.Gate == inversePairs[a.Gate]
	case rotationGates[a.Gate]:
		return b.Gate == a.Gate && angleIsFullTurn(a.Params[0]+b.Params[0])
	}
	return false
}

// nextOnAnyQubit returns the first operation after i that touches any of
// the listed qubits, or -1.
func nextOnAnyQubit(c *Circuit, i int, qubits []int) int {
	for j := i + 1; j < len(c.Ops); j++ {
		for _, q := range qubits {
			if c.Ops[j].touches(q) {
				return j
			}
		}
	}
	return -1
}

// cancelTwoQubitPairs removes consecutive self-inverse two-qubit gates
// with identical qubit lists. Operations on disjoint qubits may sit
// between the pair; anything sharing a qubit blocks cancellation.
func cancelTwoQubitPairs(c *Circuit) bool {
	changed := false
	for i := 0; i < len(c.Ops); i++ {
		a := c.Ops[i]
		if len(a.Qubits) != 2 || !selfInverseGates[a.Gate] {
			continue
		}
		j := nextOnAnyQubit(c, i, a.Qubits)
		if j < 0 {
			continue
		}
		b := c.Ops[j]
		if b.Gate != a.Gate || !sameQubitList(a.Qubits, b.Qubits) {
			continue
		}
		removePair(c, i, j)
		changed = true
		i--
	}
	return changed
}

func sameQubitList(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mergeRotations folds consecutive same-gate rotations on identical qubit
// lists into one by adding their angles, dropping the result when the sum
// is a full turn.
func mergeRotations(c *Circuit) bool {
	changed := false
	for i := 0; i < len(c.Ops); i++ {
		a := c.Ops[i]
		if !rotationGates[a.Gate] {
			continue
		}
		j := nextOnAnyQubit(c, i, a.Qubits)
		if j < 0 {
			continue
		}
		b := c.Ops[j]
		if b.Gate != a.Gate || !sameQubitList(a.Qubits, b.Qubits) {
			continue
		}
		sum := a.Params[0] + b.Params[0]
		if angleIsFullTurn(sum) {
			removePair(c, i, j)
		} else {
			c.Ops[i].Params = []float64{sum}
			c.Ops = append(c.Ops[:j], c.Ops[j+1:]...)
		}
		changed = true
		i--
	}
	return changed
}
