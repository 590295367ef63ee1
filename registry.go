package qsimkit

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry is a concurrency-safe in-memory store of named circuits.
// All reads hand out deep copies; callers never share circuit memory
// with the store.
type Registry struct {
	mu       sync.RWMutex
	circuits map[string]*Circuit
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{circuits: make(map[string]*Circuit)}
}

// Create registers a new empty circuit. An empty name is replaced with a
// generated unique one. The stored circuit's name is returned.
func (r *Registry) Create(name string, numQubits, numCbits int) (string, error) {
	c, err := NewCircuit(name, numQubits, numCbits)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.Name == "" {
		c.Name = r.generateNameLocked()
	} else if _, exists := r.circuits[c.Name]; exists {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	r.circuits[c.Name] = c
	return c.Name, nil
}

// generateNameLocked produces a fresh circuit_<millis>_<hex8> name.
// Caller holds the write lock.
func (r *Registry) generateNameLocked() string {
	for {
		name := fmt.Sprintf("circuit_%d_%s",
			time.Now().UnixMilli(), uuid.NewString()[:8])
		if _, exists := r.circuits[name]; !exists {
			return name
		}
	}
}

// Insert stores a fully built circuit under its own name. Used by the
// builders and the optimizer, which construct circuits outside the store.
func (r *Registry) Insert(c *Circuit) error {
	if c.Name == "" {
		return fmt.Errorf("%w: circuit name must not be empty", ErrInvalidParameter)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.circuits[c.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, c.Name)
	}
	r.circuits[c.Name] = c.Clone()
	return nil
}

// Get returns a deep copy of the named circuit.
func (r *Registry) Get(name string) (*Circuit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.circuits[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.Clone(), nil
}

// List returns the registered circuit names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.circuits))
	for name := range r.circuits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Remove deletes the named circuit.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.circuits[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.circuits, name)
	return nil
}

// AppendOperations validates and appends ops to the named circuit. The
// append is all-or-nothing: any invalid operation leaves the stored
// circuit untouched.
func (r *Registry) AppendOperations(name string, ops ...Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.circuits[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return c.Append(ops...)
}
