package qsimkit

import (
	"fmt"
	"slices"
	"strings"
)

// Operation is a single circuit instruction: either a catalog gate applied
// to Qubits, or a measurement recording a qubit into a classical bit.
type Operation struct {
	Gate   string    `json:"gate"`
	Qubits []int     `json:"qubits"`
	Params []float64 `json:"params,omitempty"`
	Cbit   int       `json:"cbit,omitempty"`
}

// Unitary builds a gate operation from a catalog name.
func Unitary(gate string, qubits []int, params ...float64) Operation {
	return Operation{Gate: gate, Qubits: qubits, Params: params}
}

// Measure builds a measurement of qubit into classical bit cbit.
func Measure(qubit, cbit int) Operation {
	return Operation{Gate: "measure", Qubits: []int{qubit}, Cbit: cbit}
}

// MeasureAll builds the pseudo-operation measuring every qubit into the
// classical bit of the same index.
func MeasureAll() Operation {
	return Operation{Gate: "measure_all"}
}

// IsMeasurement reports whether the operation is measure or measure_all.
func (op Operation) IsMeasurement() bool {
	return op.Gate == "measure" || op.Gate == "measure_all"
}

// touches reports whether the operation acts on qubit q. measure_all
// touches every qubit.
func (op Operation) touches(q int) bool {
	if op.Gate == "measure_all" {
		return true
	}
	return slices.Contains(op.Qubits, q)
}

// Circuit is an ordered list of operations over a fixed qubit and
// classical-bit register. Circuits are plain values; the Registry owns
// synchronization.
type Circuit struct {
	Name      string      `json:"name"`
	NumQubits int         `json:"num_qubits"`
	NumCbits  int         `json:"num_cbits"`
	Ops       []Operation `json:"ops"`
}

// NewCircuit returns an empty circuit. A negative numCbits sizes the
// classical register to match the qubit register; zero is a valid width.
func NewCircuit(name string, numQubits, numCbits int) (*Circuit, error) {
	if numQubits < 1 || numQubits > MaxQubits {
		return nil, fmt.Errorf("%w: num_qubits %d outside [1, %d]",
			ErrInvalidParameter, numQubits, MaxQubits)
	}
	if numCbits < 0 {
		numCbits = numQubits
	}
	return &Circuit{
		Name:      name,
		NumQubits: numQubits,
		NumCbits:  numCbits,
	}, nil
}

// MaxQubits bounds circuit width; a dense statevector at this size is
// 2^20 amplitudes, 16 MiB.
const MaxQubits = 20

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{
		Name:      c.Name,
		NumQubits: c.NumQubits,
		NumCbits:  c.NumCbits,
		Ops:       make([]Operation, len(c.Ops)),
	}
	for i, op := range c.Ops {
		out.Ops[i] = Operation{
			Gate:   op.Gate,
			Qubits: slices.Clone(op.Qubits),
			Params: slices.Clone(op.Params),
			Cbit:   op.Cbit,
		}
	}
	return out
}

// HasMeasurement reports whether any operation is a measurement.
func (c *Circuit) HasMeasurement() bool {
	for _, op := range c.Ops {
		if op.IsMeasurement() {
			return true
		}
	}
	return false
}

// GateCounts tallies operations by gate name.
func (c *Circuit) GateCounts() map[string]int {
	counts := make(map[string]int)
	for _, op := range c.Ops {
		counts[op.Gate]++
	}
	return counts
}

// Size returns the total operation count.
func (c *Circuit) Size() int { return len(c.Ops) }

// Depth returns the circuit depth: the length of the longest chain of
// operations linked by shared qubits. Measurements count as depth steps.
func (c *Circuit) Depth() int {
	last := make([]int, c.NumQubits)
	for i := range last {
		last[i] = -1
	}
	depth := 0
	for _, op := range c.Ops {
		step := 0
		qubits := op.Qubits
		if op.Gate == "measure_all" {
			qubits = allQubits(c.NumQubits)
		}
		for _, q := range qubits {
			if last[q]+1 > step {
				step = last[q] + 1
			}
		}
		for _, q := range qubits {
			last[q] = step
		}
		if step+1 > depth {
			depth = step + 1
		}
	}
	return depth
}

func allQubits(n int) []int {
	qs := make([]int, n)
	for i := range qs {
		qs[i] = i
	}
	return qs
}

// validateOp checks a single operation against the catalog and the
// circuit's registers. It does not mutate the circuit.
func (c *Circuit) validateOp(op Operation) error {
	switch op.Gate {
	case "measure":
		if len(op.Qubits) != 1 {
			return fmt.Errorf("%w: measure takes exactly one qubit", ErrInvalidOperation)
		}
		if q := op.Qubits[0]; q < 0 || q >= c.NumQubits {
			return fmt.Errorf("%w: qubit %d out of range [0, %d)", ErrInvalidOperation, q, c.NumQubits)
		}
		if op.Cbit < 0 || op.Cbit >= c.NumCbits {
			return fmt.Errorf("%w: classical bit %d out of range [0, %d)", ErrInvalidOperation, op.Cbit, c.NumCbits)
		}
		return nil
	case "measure_all":
		if len(op.Qubits) != 0 {
			return fmt.Errorf("%w: measure_all takes no qubit list", ErrInvalidOperation)
		}
		if c.NumCbits < c.NumQubits {
			return fmt.Errorf("%w: measure_all needs %d classical bits, circuit has %d",
				ErrInvalidOperation, c.NumQubits, c.NumCbits)
		}
		return nil
	}

	spec, ok := LookupGate(op.Gate)
	if !ok {
		return fmt.Errorf("%w: unknown gate %q", ErrInvalidOperation, op.Gate)
	}
	if len(op.Qubits) != spec.Arity {
		return fmt.Errorf("%w: gate %q takes %d qubit(s), got %d",
			ErrInvalidOperation, op.Gate, spec.Arity, len(op.Qubits))
	}
	if len(op.Params) != spec.ParamCount {
		return fmt.Errorf("%w: gate %q takes %d parameter(s), got %d",
			ErrInvalidOperation, op.Gate, spec.ParamCount, len(op.Params))
	}
	seen := make(map[int]bool, len(op.Qubits))
	for _, q := range op.Qubits {
		if q < 0 || q >= c.NumQubits {
			return fmt.Errorf("%w: qubit %d out of range [0, %d)", ErrInvalidOperation, q, c.NumQubits)
		}
		if seen[q] {
			return fmt.Errorf("%w: gate %q lists qubit %d twice", ErrInvalidOperation, op.Gate, q)
		}
		seen[q] = true
	}
	// Unitary gates cannot follow a measurement; the simulator has no
	// mid-circuit collapse.
	if c.HasMeasurement() {
		return fmt.Errorf("%w: cannot append gate %q after a measurement", ErrInvalidOperation, op.Gate)
	}
	return nil
}

// Append validates and appends operations. Validation is all-or-nothing:
// on error the circuit is unchanged.
func (c *Circuit) Append(ops ...Operation) error {
	staged := c.Clone()
	for i, op := range ops {
		if err := staged.validateOp(op); err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		staged.Ops = append(staged.Ops, op)
	}
	c.Ops = staged.Ops
	return nil
}

// cbitMapping returns the classical-bit destination for each qubit, or -1
// where a qubit is never measured. Later measurements overwrite earlier
// ones targeting the same classical bit.
func (c *Circuit) cbitMapping() []int {
	dest := make([]int, c.NumCbits)
	for i := range dest {
		dest[i] = -1
	}
	for _, op := range c.Ops {
		switch op.Gate {
		case "measure":
			dest[op.Cbit] = op.Qubits[0]
		case "measure_all":
			for q := 0; q < c.NumQubits && q < c.NumCbits; q++ {
				dest[q] = q
			}
		}
	}
	return dest
}

// Describe returns a short human-readable summary of the circuit.
func (c *Circuit) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d qubit(s), %d operation(s), depth %d\n",
		c.Name, c.NumQubits, c.Size(), c.Depth())
	for i, op := range c.Ops {
		fmt.Fprintf(&b, "  %3d: %s", i, FormatOperation(op))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatOperation renders one operation in QASM-like notation.
func FormatOperation(op Operation) string {
	switch op.Gate {
	case "measure":
		return fmt.Sprintf("measure q[%d] -> c[%d]", op.Qubits[0], op.Cbit)
	case "measure_all":
		return "measure_all"
	}
	var b strings.Builder
	b.WriteString(op.Gate)
	if len(op.Params) > 0 {
		b.WriteByte('(')
		for i, p := range op.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatParam(p))
		}
		b.WriteByte(')')
	}
	b.WriteByte(' ')
	for i, q := range op.Qubits {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "q[%d]", q)
	}
	return b.String()
}
