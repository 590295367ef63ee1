package qsimkit

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"
	"strings"
)

// Statevector holds the dense amplitude vector of an n-qubit register.
// Qubit q occupies bit 1<<q of the amplitude index; qubit 0 is the least
// significant bit. Bitstrings are rendered with qubit n-1 leftmost.
type Statevector struct {
	NumQubits int
	Amps      []complex128
}

// NewStatevector returns |0...0> on numQubits qubits.
func NewStatevector(numQubits int) *Statevector {
	sv := &Statevector{
		NumQubits: numQubits,
		Amps:      make([]complex128, 1<<numQubits),
	}
	sv.Amps[0] = 1
	return sv
}

// apply1 applies a 2x2 unitary to qubit q by pairwise amplitude update.
func (sv *Statevector) apply1(m [][]complex128, q int) {
	bit := 1 << q
	for i := range sv.Amps {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a, b := sv.Amps[i], sv.Amps[j]
		sv.Amps[i] = m[0][0]*a + m[0][1]*b
		sv.Amps[j] = m[1][0]*a + m[1][1]*b
	}
}

// apply2 applies a 4x4 unitary to the ordered pair (qa, qb), with qa as
// the high matrix bit. Amplitudes are updated in place four at a time.
func (sv *Statevector) apply2(m [][]complex128, qa, qb int) {
	ba, bb := 1<<qa, 1<<qb
	var in, out [4]complex128
	for i := range sv.Amps {
		if i&ba != 0 || i&bb != 0 {
			continue
		}
		idx := [4]int{i, i | bb, i | ba, i | ba | bb}
		for k, x := range idx {
			in[k] = sv.Amps[x]
		}
		for r := 0; r < 4; r++ {
			out[r] = m[r][0]*in[0] + m[r][1]*in[1] + m[r][2]*in[2] + m[r][3]*in[3]
		}
		for k, x := range idx {
			sv.Amps[x] = out[k]
		}
	}
}

// ApplyUnitary applies one catalog gate operation to the state.
func (sv *Statevector) ApplyUnitary(op Operation) error {
	spec, ok := LookupGate(op.Gate)
	if !ok {
		return fmt.Errorf("%w: unknown gate %q", ErrInvalidOperation, op.Gate)
	}
	m := spec.Matrix(op.Params)
	switch spec.Arity {
	case 1:
		sv.apply1(m, op.Qubits[0])
	case 2:
		sv.apply2(m, op.Qubits[0], op.Qubits[1])
	default:
		return fmt.Errorf("%w: gate %q has unsupported arity %d",
			ErrInvalidOperation, op.Gate, spec.Arity)
	}
	return nil
}

// norm returns the squared 2-norm of the amplitudes.
func (sv *Statevector) norm() float64 {
	var n float64
	for _, a := range sv.Amps {
		n += real(a)*real(a) + imag(a)*imag(a)
	}
	return n
}

// normTolerance bounds the drift of the squared norm away from 1 accepted
// after simulating a circuit.
const normTolerance = 1e-6

// Simulate runs every unitary operation of the circuit from |0...0> and
// returns the final state. Measurements are skipped; they only matter to
// Run. The state norm is checked after the last gate.
func Simulate(c *Circuit) (*Statevector, error) {
	sv := NewStatevector(c.NumQubits)
	for _, op := range c.Ops {
		if op.IsMeasurement() {
			continue
		}
		if err := sv.ApplyUnitary(op); err != nil {
			return nil, err
		}
	}
	if drift := math.Abs(sv.norm() - 1); drift > normTolerance {
		return nil, fmt.Errorf("%w: squared norm off by %.3g", ErrNormDrift, drift)
	}
	return sv, nil
}

// Probabilities returns |amp|^2 per basis state.
func (sv *Statevector) Probabilities() []float64 {
	probs := make([]float64, len(sv.Amps))
	for i, a := range sv.Amps {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// QubitProbabilities returns the marginal probability of measuring 1 on
// each qubit.
func (sv *Statevector) QubitProbabilities() []float64 {
	probs := make([]float64, sv.NumQubits)
	for i, a := range sv.Amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		for q := 0; q < sv.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q] += p
			}
		}
	}
	return probs
}

// FormatBasisState renders basis index i of an n-qubit register with
// qubit n-1 leftmost.
func FormatBasisState(i, n int) string {
	var b strings.Builder
	for q := n - 1; q >= 0; q-- {
		if i&(1<<q) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Sample draws shots basis states from the distribution using inverse
// transform sampling over the cumulative distribution. The same seed
// always yields the same sequence.
func (sv *Statevector) Sample(shots int, seed int64) []int {
	probs := sv.Probabilities()
	cdf := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		cdf[i] = sum
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, shots)
	for s := 0; s < shots; s++ {
		r := rng.Float64() * sum
		out[s] = sort.SearchFloat64s(cdf, r)
	}
	return out
}

// DefaultShots is the shot count used when a caller passes zero.
const DefaultShots = 1000

// Run simulates the circuit and samples its measurements, returning
// classical bitstring counts keyed with bit NumCbits-1 leftmost. Circuits
// without any measurement cannot be run.
func Run(c *Circuit, shots int, seed int64) (map[string]int, error) {
	if !c.HasMeasurement() {
		return nil, fmt.Errorf("%w: circuit %q", ErrNoMeasurement, c.Name)
	}
	if shots == 0 {
		shots = DefaultShots
	}
	if shots < 0 {
		return nil, fmt.Errorf("%w: shots %d", ErrInvalidParameter, shots)
	}
	sv, err := Simulate(c)
	if err != nil {
		return nil, err
	}
	dest := c.cbitMapping()
	counts := make(map[string]int)
	for _, basis := range sv.Sample(shots, seed) {
		var b strings.Builder
		for cb := c.NumCbits - 1; cb >= 0; cb-- {
			q := dest[cb]
			if q >= 0 && basis&(1<<q) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		counts[b.String()]++
	}
	return counts, nil
}

// GlobalPhaseDistance returns the largest elementwise deviation between
// the two states after aligning their global phases. States of unequal
// width are infinitely far apart.
func GlobalPhaseDistance(a, b *Statevector) float64 {
	if a.NumQubits != b.NumQubits {
		return math.Inf(1)
	}
	// Align phases on the largest amplitude of a.
	ref, best := 0, 0.0
	for i, amp := range a.Amps {
		if m := cmplx.Abs(amp); m > best {
			ref, best = i, m
		}
	}
	if best == 0 {
		return math.Inf(1)
	}
	phase := complex(1, 0)
	if cmplx.Abs(b.Amps[ref]) > 0 {
		phase = a.Amps[ref] / b.Amps[ref] *
			complex(cmplx.Abs(b.Amps[ref])/cmplx.Abs(a.Amps[ref]), 0)
	}
	var worst float64
	for i := range a.Amps {
		if d := cmplx.Abs(a.Amps[i] - phase*b.Amps[i]); d > worst {
			worst = d
		}
	}
	return worst
}
