package qsimkit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCircuit(t *testing.T, name string, n int, ops ...Operation) *Circuit {
	t.Helper()
	c, err := NewCircuit(name, n, -1)
	require.NoError(t, err)
	require.NoError(t, c.Append(ops...))
	return c
}

func TestBellStateAmplitudes(t *testing.T) {
	c := mustCircuit(t, "bell", 2,
		Unitary("h", []int{0}),
		Unitary("cx", []int{0, 1}),
	)
	sv, err := Simulate(c)
	require.NoError(t, err)

	want := 1 / math.Sqrt2
	assert.InDelta(t, want, real(sv.Amps[0]), 1e-12)
	assert.InDelta(t, 0.0, real(sv.Amps[1]), 1e-12)
	assert.InDelta(t, 0.0, real(sv.Amps[2]), 1e-12)
	assert.InDelta(t, want, real(sv.Amps[3]), 1e-12)
}

// x on qubit 0 of a two-qubit register flips the least significant bit,
// so the formatted state reads "01" with qubit 1 leftmost.
func TestBitstringEndianness(t *testing.T) {
	c := mustCircuit(t, "lsb", 2, Unitary("x", []int{0}))
	sv, err := Simulate(c)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(sv.Amps[1]), 1e-12)
	assert.Equal(t, "01", FormatBasisState(1, 2))
	assert.Equal(t, "10", FormatBasisState(2, 2))
}

func TestGateInverseRoundTrips(t *testing.T) {
	cases := []struct {
		name string
		ops  []Operation
	}{
		{"h-h", []Operation{Unitary("h", []int{0}), Unitary("h", []int{0})}},
		{"s-sdg", []Operation{Unitary("s", []int{0}), Unitary("sdg", []int{0})}},
		{"t-tdg", []Operation{Unitary("t", []int{0}), Unitary("tdg", []int{0})}},
		{"rx", []Operation{Unitary("rx", []int{0}, 1.234), Unitary("rx", []int{0}, -1.234)}},
		{"ry", []Operation{Unitary("ry", []int{1}, 0.777), Unitary("ry", []int{1}, -0.777)}},
		{"rz", []Operation{Unitary("rz", []int{0}, 2.5), Unitary("rz", []int{0}, -2.5)}},
		{"u", []Operation{
			Unitary("u", []int{0}, 0.4, 0.9, 1.3),
			Unitary("u", []int{0}, -0.4, -1.3, -0.9),
		}},
		{"cx-cx", []Operation{Unitary("cx", []int{0, 1}), Unitary("cx", []int{0, 1})}},
		{"swap-swap", []Operation{Unitary("swap", []int{0, 1}), Unitary("swap", []int{0, 1})}},
		{"rxx", []Operation{Unitary("rxx", []int{0, 1}, 0.6), Unitary("rxx", []int{0, 1}, -0.6)}},
		{"ryy", []Operation{Unitary("ryy", []int{0, 1}, 1.9), Unitary("ryy", []int{0, 1}, -1.9)}},
		{"rzz", []Operation{Unitary("rzz", []int{0, 1}, 0.3), Unitary("rzz", []int{0, 1}, -0.3)}},
		{"cp", []Operation{Unitary("cp", []int{0, 1}, 1.1), Unitary("cp", []int{0, 1}, -1.1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Scramble the start state so the round trip is not trivially
			// the identity on |00>.
			prep := []Operation{
				Unitary("ry", []int{0}, 0.9),
				Unitary("ry", []int{1}, 1.7),
				Unitary("cx", []int{0, 1}),
			}
			base := mustCircuit(t, "prep", 2, prep...)
			ref, err := Simulate(base)
			require.NoError(t, err)

			full := mustCircuit(t, "round", 2, append(append([]Operation{}, prep...), tc.ops...)...)
			got, err := Simulate(full)
			require.NoError(t, err)

			assert.Less(t, GlobalPhaseDistance(ref, got), 1e-9)
		})
	}
}

func TestCHActsOnlyWhenControlSet(t *testing.T) {
	// Control clear: target stays |0>.
	c := mustCircuit(t, "ch-off", 2, Unitary("ch", []int{0, 1}))
	sv, err := Simulate(c)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(sv.Amps[0]), 1e-12)

	// Control set: target goes to |+>.
	c = mustCircuit(t, "ch-on", 2,
		Unitary("x", []int{0}),
		Unitary("ch", []int{0, 1}),
	)
	sv, err = Simulate(c)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, real(sv.Amps[1]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, real(sv.Amps[3]), 1e-12)
}

func TestRunRequiresMeasurement(t *testing.T) {
	c := mustCircuit(t, "bare", 1, Unitary("h", []int{0}))
	_, err := Run(c, 100, 1)
	assert.ErrorIs(t, err, ErrNoMeasurement)
}

func TestRunBellCounts(t *testing.T) {
	c := mustCircuit(t, "bell-run", 2,
		Unitary("h", []int{0}),
		Unitary("cx", []int{0, 1}),
		MeasureAll(),
	)
	counts, err := Run(c, 100000, 42)
	require.NoError(t, err)

	total := 0
	for state, n := range counts {
		require.Contains(t, []string{"00", "11"}, state)
		total += n
	}
	assert.Equal(t, 100000, total)
	assert.InDelta(t, 0.5, float64(counts["00"])/100000, 0.02)
	assert.InDelta(t, 0.5, float64(counts["11"])/100000, 0.02)
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	c := mustCircuit(t, "det", 1, Unitary("h", []int{0}), MeasureAll())
	a, err := Run(c, 500, 7)
	require.NoError(t, err)
	b, err := Run(c, 500, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunPartialMeasurementMapping(t *testing.T) {
	// Only qubit 1 is measured, into classical bit 0. Qubit 1 is |1>, so
	// every shot reads "01" on the two-bit classical register.
	c := mustCircuit(t, "partial", 2,
		Unitary("x", []int{1}),
		Measure(1, 0),
	)
	counts, err := Run(c, 200, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"01": 200}, counts)
}

func TestRunNarrowClassicalRegister(t *testing.T) {
	// A one-bit classical register over two qubits: the bitstring width
	// follows the classical register, not the qubit count.
	c, err := NewCircuit("narrow", 2, 1)
	require.NoError(t, err)
	require.NoError(t, c.Append(
		Unitary("x", []int{1}),
		Measure(1, 0),
	))
	counts, err := Run(c, 150, 7)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 150}, counts)
}

func TestRunDefaultShots(t *testing.T) {
	c := mustCircuit(t, "defaults", 1, Unitary("x", []int{0}), MeasureAll())
	counts, err := Run(c, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultShots, counts["1"])
}

func TestMeasurementsDoNotDisturbSimulatedState(t *testing.T) {
	plain := mustCircuit(t, "plain", 2, Unitary("h", []int{0}))
	measured := mustCircuit(t, "measured", 2, Unitary("h", []int{0}), MeasureAll())

	a, err := Simulate(plain)
	require.NoError(t, err)
	b, err := Simulate(measured)
	require.NoError(t, err)
	assert.Less(t, GlobalPhaseDistance(a, b), 1e-12)
}

func TestApplyUnitaryRejectsUnknownGate(t *testing.T) {
	sv := NewStatevector(1)
	err := sv.ApplyUnitary(Operation{Gate: "toffoli", Qubits: []int{0}})
	assert.True(t, errors.Is(err, ErrInvalidOperation))
}
