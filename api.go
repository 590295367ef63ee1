package qsimkit

import (
	"fmt"

	"github.com/google/uuid"
)

// Engine binds the circuit registry to simulation and analysis. Every
// method resolves names through the registry and operates on snapshots,
// so concurrent callers never observe a circuit mid-mutation.
type Engine struct {
	reg *Registry
}

// NewEngine returns an engine with an empty registry.
func NewEngine() *Engine {
	return &Engine{reg: NewRegistry()}
}

// CreateCircuit registers an empty circuit and returns its stored name.
// An empty name gets a generated unique one; a negative numCbits defaults
// the classical register to numQubits bits.
func (e *Engine) CreateCircuit(name string, numQubits, numCbits int) (string, error) {
	return e.reg.Create(name, numQubits, numCbits)
}

// AppendGates appends operations to the named circuit, all-or-nothing.
func (e *Engine) AppendGates(name string, ops ...Operation) error {
	return e.reg.AppendOperations(name, ops...)
}

// Run simulates the named circuit and samples it, returning classical
// bitstring counts. A zero shot count means DefaultShots.
func (e *Engine) Run(name string, shots int, seed int64) (map[string]int, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return nil, err
	}
	return Run(c, shots, seed)
}

// Describe returns a text summary of the named circuit.
func (e *Engine) Describe(name string) (string, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return "", err
	}
	return c.Describe(), nil
}

// ListCircuits returns all registered circuit names, sorted.
func (e *Engine) ListCircuits() []string {
	return e.reg.List()
}

// RemoveCircuit deletes the named circuit from the registry.
func (e *Engine) RemoveCircuit(name string) error {
	return e.reg.Remove(name)
}

// Get returns a snapshot of the named circuit.
func (e *Engine) Get(name string) (*Circuit, error) {
	return e.reg.Get(name)
}

// AnalyzeStatevector reports the most probable basis states of the named
// measurement-free circuit.
func (e *Engine) AnalyzeStatevector(name string) (*StatevectorAnalysis, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return nil, err
	}
	return AnalyzeStatevector(c)
}

// AnalyzeDensityMatrix reports purity, spectrum and entanglement of the
// named measurement-free circuit.
func (e *Engine) AnalyzeDensityMatrix(name string) (*DensityAnalysis, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return nil, err
	}
	return AnalyzeDensityMatrix(c)
}

// Optimize rewrites the named circuit at the given level, stores the
// result under a derived unique name and returns that name with the
// reduction report.
func (e *Engine) Optimize(name string, level int) (string, *OptimizeReport, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return "", nil, err
	}
	out, report, err := Optimize(c, level)
	if err != nil {
		return "", nil, err
	}
	for {
		out.Name = fmt.Sprintf("%s_opt%d_%s", name, level, uuid.NewString()[:8])
		if err := e.reg.Insert(out); err == nil {
			break
		}
	}
	return out.Name, report, nil
}

// BuildVariational constructs a variational ansatz and registers it,
// returning the stored name and the ansatz parameter count.
func (e *Engine) BuildVariational(name string, numQubits, layers int, entanglement string) (string, int, error) {
	c, params, err := BuildVariational(name, numQubits, layers, entanglement)
	if err != nil {
		return "", 0, err
	}
	stored, err := e.insertBuilt(c)
	if err != nil {
		return "", 0, err
	}
	return stored, params, nil
}

// BuildQFT constructs a quantum Fourier transform circuit and registers it.
func (e *Engine) BuildQFT(name string, numQubits int, inverse bool) (string, error) {
	c, err := BuildQFT(name, numQubits, inverse)
	if err != nil {
		return "", err
	}
	return e.insertBuilt(c)
}

// ExportQASM serializes the named circuit as OpenQASM 2.0.
func (e *Engine) ExportQASM(name string) (string, error) {
	c, err := e.reg.Get(name)
	if err != nil {
		return "", err
	}
	return ToQASM(c), nil
}

// ImportQASM parses OpenQASM 2.0 text and registers the resulting circuit
// under the given name, returning the stored name.
func (e *Engine) ImportQASM(name, qasm string) (string, error) {
	c, err := ParseQASM(name, qasm)
	if err != nil {
		return "", err
	}
	return e.insertBuilt(c)
}

func (e *Engine) insertBuilt(c *Circuit) (string, error) {
	if c.Name == "" {
		// Route through Create-style naming by inserting under a generated
		// name.
		e.reg.mu.Lock()
		c.Name = e.reg.generateNameLocked()
		e.reg.circuits[c.Name] = c.Clone()
		e.reg.mu.Unlock()
		return c.Name, nil
	}
	if err := e.reg.Insert(c); err != nil {
		return "", err
	}
	return c.Name, nil
}
