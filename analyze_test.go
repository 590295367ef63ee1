package qsimkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellCircuit(t *testing.T) *Circuit {
	t.Helper()
	return mustCircuit(t, "bell", 2,
		Unitary("h", []int{0}),
		Unitary("cx", []int{0, 1}),
	)
}

func TestAnalyzeStatevectorBell(t *testing.T) {
	res, err := AnalyzeStatevector(bellCircuit(t))
	require.NoError(t, err)

	require.Len(t, res.TopStates, 2)
	probs := map[string]float64{}
	for _, sp := range res.TopStates {
		probs[sp.State] = sp.Probability
	}
	assert.InDelta(t, 0.5, probs["00"], 1e-12)
	assert.InDelta(t, 0.5, probs["11"], 1e-12)
	assert.InDelta(t, 0.5, res.QubitProbability1[0], 1e-12)
	assert.InDelta(t, 0.5, res.QubitProbability1[1], 1e-12)
}

func TestAnalyzeStatevectorTopStateCap(t *testing.T) {
	// Four Hadamards spread probability over sixteen basis states; only
	// ten are reported.
	c := mustCircuit(t, "uniform", 4,
		Unitary("h", []int{0}),
		Unitary("h", []int{1}),
		Unitary("h", []int{2}),
		Unitary("h", []int{3}),
	)
	res, err := AnalyzeStatevector(c)
	require.NoError(t, err)
	assert.Len(t, res.TopStates, 10)
	for _, sp := range res.TopStates {
		assert.InDelta(t, 1.0/16, sp.Probability, 1e-12)
	}
}

func TestAnalyzeRejectsMeasuredCircuit(t *testing.T) {
	c := mustCircuit(t, "measured", 1, Unitary("h", []int{0}), MeasureAll())

	_, err := AnalyzeStatevector(c)
	assert.ErrorIs(t, err, ErrMeasurementPresent)

	_, err = AnalyzeDensityMatrix(c)
	assert.ErrorIs(t, err, ErrMeasurementPresent)

	_, err = EntanglementEntropy(c, []int{0})
	assert.ErrorIs(t, err, ErrMeasurementPresent)
}

func TestDensityMatrixBell(t *testing.T) {
	res, err := AnalyzeDensityMatrix(bellCircuit(t))
	require.NoError(t, err)

	// Pure state: unit purity, zero total entropy, a single unit
	// eigenvalue.
	assert.InDelta(t, 1.0, res.Purity, 1e-9)
	assert.InDelta(t, 0.0, res.Entropy, 1e-9)
	require.NotEmpty(t, res.Eigenvalues)
	assert.InDelta(t, 1.0, res.Eigenvalues[0], 1e-9)

	// Maximally entangled: one bit of entanglement entropy.
	assert.InDelta(t, 1.0, res.EntanglementEntropy, 1e-9)
	assert.True(t, res.Entangled)
}

func TestDensityMatrixProductState(t *testing.T) {
	c := mustCircuit(t, "product", 2,
		Unitary("h", []int{0}),
		Unitary("x", []int{1}),
	)
	res, err := AnalyzeDensityMatrix(c)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Purity, 1e-9)
	assert.InDelta(t, 0.0, res.EntanglementEntropy, 1e-9)
	assert.False(t, res.Entangled)
}

func TestPartialTraceBellReduced(t *testing.T) {
	sv, err := Simulate(bellCircuit(t))
	require.NoError(t, err)
	reduced, err := DensityFromState(sv).PartialTrace([]int{0})
	require.NoError(t, err)

	// Tracing out one half of a Bell pair leaves the maximally mixed
	// single-qubit state.
	assert.InDelta(t, 0.5, real(reduced.Data[0][0]), 1e-12)
	assert.InDelta(t, 0.5, real(reduced.Data[1][1]), 1e-12)
	assert.InDelta(t, 0.0, real(reduced.Data[0][1]), 1e-12)
	assert.InDelta(t, 0.0, imag(reduced.Data[0][1]), 1e-12)
	assert.InDelta(t, 0.5, reduced.Purity(), 1e-9)
	assert.InDelta(t, 1.0, reduced.Entropy(), 1e-9)
}

func TestPartialTraceKeepOrdering(t *testing.T) {
	// Qubit 2 is |1>; keeping qubits {1, 2} must place it at reduced
	// index bit 1.
	c := mustCircuit(t, "order", 3, Unitary("x", []int{2}))
	sv, err := Simulate(c)
	require.NoError(t, err)
	reduced, err := DensityFromState(sv).PartialTrace([]int{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(reduced.Data[2][2]), 1e-12)
}

func TestPartialTraceRejectsBadKeepLists(t *testing.T) {
	sv, err := Simulate(bellCircuit(t))
	require.NoError(t, err)
	dm := DensityFromState(sv)

	_, err = dm.PartialTrace(nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = dm.PartialTrace([]int{0, 1})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = dm.PartialTrace([]int{5})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = dm.PartialTrace([]int{0, 0})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGHZEntanglementEntropy(t *testing.T) {
	c := mustCircuit(t, "ghz", 3,
		Unitary("h", []int{0}),
		Unitary("cx", []int{0, 1}),
		Unitary("cx", []int{1, 2}),
	)
	for _, keep := range [][]int{{0}, {1}, {2}, {0, 1}} {
		h, err := EntanglementEntropy(c, keep)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, h, 1e-9, "keep %v", keep)
	}
}

func TestEigenvaluesOfMixedDiagonal(t *testing.T) {
	dm := &DensityMatrix{NumQubits: 1, Data: [][]complex128{
		{complex(0.75, 0), 0},
		{0, complex(0.25, 0)},
	}}
	evs := dm.Eigenvalues()
	require.Len(t, evs, 2)
	assert.InDelta(t, 0.75, evs[0], 1e-12)
	assert.InDelta(t, 0.25, evs[1], 1e-12)

	want := -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))
	assert.InDelta(t, want, dm.Entropy(), 1e-9)
	assert.InDelta(t, 0.75*0.75+0.25*0.25, dm.Purity(), 1e-12)
}

func TestEigenvaluesOfNonDiagonalHermitian(t *testing.T) {
	// rho = |+i><+i| has eigenvalues {1, 0} and complex off-diagonals.
	dm := &DensityMatrix{NumQubits: 1, Data: [][]complex128{
		{complex(0.5, 0), complex(0, -0.5)},
		{complex(0, 0.5), complex(0.5, 0)},
	}}
	evs := dm.Eigenvalues()
	require.Len(t, evs, 2)
	assert.InDelta(t, 1.0, evs[0], 1e-9)
	assert.InDelta(t, 0.0, evs[1], 1e-9)
}

func TestEigenvaluesWithUnequalDiagonal(t *testing.T) {
	// [[a, b], [conj(b), d]] has eigenvalues (a+d)/2 +- sqrt(((a-d)/2)^2 + |b|^2).
	// Here that is 0.5 +- sqrt(0.04 + 0.05) = {0.8, 0.2}.
	dm := &DensityMatrix{NumQubits: 1, Data: [][]complex128{
		{complex(0.7, 0), complex(0.2, -0.1)},
		{complex(0.2, 0.1), complex(0.3, 0)},
	}}
	evs := dm.Eigenvalues()
	require.Len(t, evs, 2)
	assert.InDelta(t, 0.8, evs[0], 1e-9)
	assert.InDelta(t, 0.2, evs[1], 1e-9)

	want := -(0.8*math.Log2(0.8) + 0.2*math.Log2(0.2))
	assert.InDelta(t, want, dm.Entropy(), 1e-9)
	assert.InDelta(t, 0.8*0.8+0.2*0.2, dm.Purity(), 1e-9)
}

func TestReducedSpectrumMatchesClosedForm(t *testing.T) {
	// Rotating the kept qubit after entangling gives a reduced matrix
	// with unequal diagonal and a fully complex off-diagonal.
	c := mustCircuit(t, "skew", 2,
		Unitary("ry", []int{0}, 0.7),
		Unitary("t", []int{0}),
		Unitary("cx", []int{0, 1}),
		Unitary("rx", []int{0}, 0.4),
		Unitary("rz", []int{0}, 1.1),
	)
	sv, err := Simulate(c)
	require.NoError(t, err)
	full := DensityFromState(sv)
	reduced, err := full.PartialTrace([]int{0})
	require.NoError(t, err)

	a := real(reduced.Data[0][0])
	d := real(reduced.Data[1][1])
	b := reduced.Data[0][1]
	disc := math.Sqrt((a-d)*(a-d)/4 + real(b)*real(b) + imag(b)*imag(b))
	wantHi := (a+d)/2 + disc
	wantLo := (a+d)/2 - disc

	evs := reduced.Eigenvalues()
	require.Len(t, evs, 2)
	assert.InDelta(t, wantHi, evs[0], 1e-9)
	assert.InDelta(t, wantLo, evs[1], 1e-9)
	assert.InDelta(t, 1.0, evs[0]+evs[1], 1e-9)
	assert.InDelta(t, reduced.Purity(), evs[0]*evs[0]+evs[1]*evs[1], 1e-9)
}

func TestEigenvaluesOfPureTwoQubitState(t *testing.T) {
	c := mustCircuit(t, "pure", 2,
		Unitary("ry", []int{0}, 0.9),
		Unitary("cx", []int{0, 1}),
		Unitary("rz", []int{1}, 0.3),
	)
	sv, err := Simulate(c)
	require.NoError(t, err)
	evs := DensityFromState(sv).Eigenvalues()
	require.Len(t, evs, 4)
	assert.InDelta(t, 1.0, evs[0], 1e-9)
	for _, ev := range evs[1:] {
		assert.InDelta(t, 0.0, ev, 1e-9)
	}
}
