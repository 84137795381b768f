package record

import (
	"sort"
	"sync"
)

// Registry holds defined types by name so that decoding and diagnostics can
// locate them without any reliance on the call site that defined them.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds a type to the registry. Registering a second type under the
// same name replaces the first, matching redefinition semantics.
func (r *Registry) Register(t *Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t.name] = t
}

// Define validates a schema and registers the resulting type in this
// registry instead of the package default.
func (r *Registry) Define(typeName string, fields any, opts ...Option) (*Type, error) {
	t, err := define(typeName, fields, opts...)
	if err != nil {
		return nil, err
	}
	r.Register(t)
	return t, nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the package-level registry that Define feeds and
// record decoding consults.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
