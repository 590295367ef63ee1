package qsimkit

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// StateProbability pairs a basis bitstring with its probability.
type StateProbability struct {
	State       string  `json:"state"`
	Probability float64 `json:"probability"`
}

// StatevectorAnalysis summarizes the final state of a measurement-free
// circuit.
type StatevectorAnalysis struct {
	NumQubits         int                `json:"num_qubits"`
	Amplitudes        []complex128       `json:"-"`
	TopStates         []StateProbability `json:"top_states"`
	MostProbable      string             `json:"most_probable"`
	QubitProbability1 []float64          `json:"qubit_probability_1"`
}

// topStateCount caps the number of basis states reported by
// AnalyzeStatevector.
const topStateCount = 10

// AnalyzeStatevector simulates a circuit and reports its most probable
// basis states. Circuits containing measurements are rejected; analysis
// targets the pure pre-measurement state.
func AnalyzeStatevector(c *Circuit) (*StatevectorAnalysis, error) {
	if c.HasMeasurement() {
		return nil, fmt.Errorf("%w: circuit %q", ErrMeasurementPresent, c.Name)
	}
	sv, err := Simulate(c)
	if err != nil {
		return nil, err
	}
	probs := sv.Probabilities()
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})
	top := make([]StateProbability, 0, topStateCount)
	for _, i := range order {
		if len(top) == topStateCount || probs[i] < 1e-12 {
			break
		}
		top = append(top, StateProbability{
			State:       FormatBasisState(i, c.NumQubits),
			Probability: probs[i],
		})
	}
	return &StatevectorAnalysis{
		NumQubits:         c.NumQubits,
		Amplitudes:        sv.Amps,
		TopStates:         top,
		MostProbable:      FormatBasisState(order[0], c.NumQubits),
		QubitProbability1: sv.QubitProbabilities(),
	}, nil
}

// DensityMatrix is a Hermitian matrix over the computational basis of
// NumQubits qubits.
type DensityMatrix struct {
	NumQubits int
	Data      [][]complex128
}

// DensityFromState builds the pure-state density matrix |psi><psi|.
func DensityFromState(sv *Statevector) *DensityMatrix {
	n := len(sv.Amps)
	data := make([][]complex128, n)
	for r := 0; r < n; r++ {
		data[r] = make([]complex128, n)
		for c := 0; c < n; c++ {
			data[r][c] = sv.Amps[r] * cmplx.Conj(sv.Amps[c])
		}
	}
	return &DensityMatrix{NumQubits: sv.NumQubits, Data: data}
}

// Purity returns Tr(rho^2), 1 for pure states.
func (dm *DensityMatrix) Purity() float64 {
	var tr complex128
	n := len(dm.Data)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			tr += dm.Data[r][c] * dm.Data[c][r]
		}
	}
	return real(tr)
}

// Entropy returns the von Neumann entropy of rho in bits, computed from
// the eigenvalue spectrum with base-2 logarithms. Zero eigenvalues
// contribute nothing.
func (dm *DensityMatrix) Entropy() float64 {
	var h float64
	for _, ev := range dm.Eigenvalues() {
		if ev > 1e-12 {
			h -= ev * math.Log2(ev)
		}
	}
	return h
}

// Eigenvalues diagonalizes rho with cyclic Jacobi rotations and returns
// the eigenvalues sorted descending, clipped at zero.
func (dm *DensityMatrix) Eigenvalues() []float64 {
	n := len(dm.Data)
	a := make([][]complex128, n)
	for r := range a {
		a[r] = make([]complex128, n)
		copy(a[r], dm.Data[r])
	}
	jacobiDiagonalize(a)
	evs := make([]float64, n)
	for i := range evs {
		evs[i] = math.Max(real(a[i][i]), 0)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(evs)))
	return evs
}

const (
	jacobiTolerance = 1e-12
	jacobiMaxSweeps = 64
)

// jacobiDiagonalize reduces a Hermitian matrix to diagonal form in place
// by repeated complex plane rotations, each zeroing one off-diagonal
// element.
func jacobiDiagonalize(a [][]complex128) {
	n := len(a)
	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if m := cmplx.Abs(a[p][q]); m > off {
					off = m
				}
			}
		}
		if off < jacobiTolerance {
			return
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				jacobiRotate(a, p, q)
			}
		}
	}
}

// jacobiRotate applies the unitary similarity transform that zeroes
// a[p][q]. The pivot's complex phase folds into the rotation, so the
// classical real-symmetric angle formulas apply to its modulus.
func jacobiRotate(a [][]complex128, p, q int) {
	mag := cmplx.Abs(a[p][q])
	if mag < jacobiTolerance {
		return
	}
	w := a[p][q] / complex(mag, 0)
	app, aqq := real(a[p][p]), real(a[q][q])

	// t solves t^2 + 2*tau*t - 1 = 0, which zeroes the transformed
	// off-diagonal mag*(c^2-s^2) + (aqq-app)*s*c.
	tau := (app - aqq) / (2 * mag)
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = -1 / (-tau + math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c
	cc, sc := complex(c, 0), complex(s, 0)

	n := len(a)
	for k := 0; k < n; k++ {
		if k == p || k == q {
			continue
		}
		akp, akq := a[k][p], a[k][q]
		a[k][p] = cc*akp + sc*cmplx.Conj(w)*akq
		a[k][q] = -sc*w*akp + cc*akq
		a[p][k] = cmplx.Conj(a[k][p])
		a[q][k] = cmplx.Conj(a[k][q])
	}
	a[p][p] = complex(app*c*c+2*mag*s*c+aqq*s*s, 0)
	a[q][q] = complex(app*s*s-2*mag*s*c+aqq*c*c, 0)
	a[p][q] = 0
	a[q][p] = 0
}

// PartialTrace traces out every qubit not listed in keep and returns the
// reduced density matrix. Kept qubits retain their relative order: reduced
// qubit j corresponds to original qubit keep[j] after keep is sorted
// ascending.
func (dm *DensityMatrix) PartialTrace(keep []int) (*DensityMatrix, error) {
	if len(keep) == 0 || len(keep) >= dm.NumQubits {
		return nil, fmt.Errorf("%w: keep list must name a strict non-empty qubit subset",
			ErrInvalidParameter)
	}
	sorted := make([]int, len(keep))
	copy(sorted, keep)
	sort.Ints(sorted)
	seen := make(map[int]bool, len(sorted))
	for _, q := range sorted {
		if q < 0 || q >= dm.NumQubits {
			return nil, fmt.Errorf("%w: qubit %d out of range [0, %d)",
				ErrInvalidParameter, q, dm.NumQubits)
		}
		if seen[q] {
			return nil, fmt.Errorf("%w: qubit %d listed twice", ErrInvalidParameter, q)
		}
		seen[q] = true
	}
	var traced []int
	for q := 0; q < dm.NumQubits; q++ {
		if !seen[q] {
			traced = append(traced, q)
		}
	}

	// scatter maps a compact index over a qubit subset back to the full
	// basis index.
	scatter := func(compact int, qubits []int) int {
		full := 0
		for j, q := range qubits {
			if compact&(1<<j) != 0 {
				full |= 1 << q
			}
		}
		return full
	}

	dim := 1 << len(sorted)
	out := make([][]complex128, dim)
	for r := 0; r < dim; r++ {
		out[r] = make([]complex128, dim)
	}
	for r := 0; r < dim; r++ {
		rb := scatter(r, sorted)
		for c := 0; c < dim; c++ {
			cb := scatter(c, sorted)
			var sum complex128
			for e := 0; e < 1<<len(traced); e++ {
				eb := scatter(e, traced)
				sum += dm.Data[rb|eb][cb|eb]
			}
			out[r][c] = sum
		}
	}
	return &DensityMatrix{NumQubits: len(sorted), Data: out}, nil
}

// entanglementThreshold is the reduced-state entropy above which a
// bipartition counts as entangled.
const entanglementThreshold = 0.01

// DensityAnalysis summarizes the density matrix of a measurement-free
// circuit, including the entanglement of qubit 0 against the rest.
type DensityAnalysis struct {
	NumQubits           int       `json:"num_qubits"`
	Purity              float64   `json:"purity"`
	Entropy             float64   `json:"entropy"`
	Eigenvalues         []float64 `json:"eigenvalues"`
	EntanglementEntropy float64   `json:"entanglement_entropy"`
	Entangled           bool      `json:"entangled"`
}

// AnalyzeDensityMatrix simulates a circuit, forms its density matrix and
// reports purity, spectrum and the entanglement entropy of the first
// qubit. Single-qubit circuits report zero entanglement.
func AnalyzeDensityMatrix(c *Circuit) (*DensityAnalysis, error) {
	if c.HasMeasurement() {
		return nil, fmt.Errorf("%w: circuit %q", ErrMeasurementPresent, c.Name)
	}
	sv, err := Simulate(c)
	if err != nil {
		return nil, err
	}
	dm := DensityFromState(sv)
	evs := dm.Eigenvalues()
	var significant []float64
	for _, ev := range evs {
		if ev > 1e-12 {
			significant = append(significant, ev)
		}
	}
	res := &DensityAnalysis{
		NumQubits:   c.NumQubits,
		Purity:      dm.Purity(),
		Entropy:     dm.Entropy(),
		Eigenvalues: significant,
	}
	if c.NumQubits > 1 {
		reduced, err := dm.PartialTrace([]int{0})
		if err != nil {
			return nil, err
		}
		res.EntanglementEntropy = reduced.Entropy()
		res.Entangled = res.EntanglementEntropy > entanglementThreshold
	}
	return res, nil
}

// EntanglementEntropy returns the von Neumann entropy of the reduced
// state over keep for the final state of a measurement-free circuit.
func EntanglementEntropy(c *Circuit, keep []int) (float64, error) {
	if c.HasMeasurement() {
		return 0, fmt.Errorf("%w: circuit %q", ErrMeasurementPresent, c.Name)
	}
	sv, err := Simulate(c)
	if err != nil {
		return 0, err
	}
	reduced, err := DensityFromState(sv).PartialTrace(keep)
	if err != nil {
		return 0, err
	}
	return reduced.Entropy(), nil
}
