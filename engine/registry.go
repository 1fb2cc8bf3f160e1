package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the registration surface a host engine embeds to discover the
// scalar functions and table providers contributed by extensions. Lookup is
// concurrency-safe; registration normally happens once at startup.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]ScalarFunction
	tables    map[string]TableProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]ScalarFunction),
		tables:    make(map[string]TableProvider),
	}
}

// RegisterFunction adds a scalar function under its own name. Registering a
// name twice fails.
func (r *Registry) RegisterFunction(fn ScalarFunction) error {
	if fn == nil {
		return fmt.Errorf("engine: RegisterFunction called with nil function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name := fn.Name()
	if _, ok := r.functions[name]; ok {
		return fmt.Errorf("engine: scalar function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// RegisterTable adds a table provider under the given name. Registering a
// name twice fails.
func (r *Registry) RegisterTable(name string, table TableProvider) error {
	if name == "" {
		return fmt.Errorf("engine: RegisterTable called with empty name")
	}
	if table == nil {
		return fmt.Errorf("engine: RegisterTable called with nil provider")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[name]; ok {
		return fmt.Errorf("engine: table %q already registered", name)
	}
	r.tables[name] = table
	return nil
}

// Function returns the named scalar function, or (nil, false) if not found.
func (r *Registry) Function(name string) (ScalarFunction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.functions[name]
	return fn, ok
}

// Table returns the named table provider, or (nil, false) if not found.
func (r *Registry) Table(name string) (TableProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[name]
	return t, ok
}

// Functions returns registered function names in deterministic order.
func (r *Registry) Functions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tables returns registered table names in deterministic order.
func (r *Registry) Tables() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
