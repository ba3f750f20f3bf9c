// Package registry maps macro names to implementations for the host.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"loom/internal/macro"
)

// Registry is a name-keyed macro catalog. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]macro.Macro
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]macro.Macro)}
}

// Register adds a macro under name. Empty names and duplicates are
// rejected: application sites reference macros by name, so one name must
// mean one implementation.
func (r *Registry) Register(name string, m macro.Macro) error {
	if name == "" {
		return fmt.Errorf("macro name must not be empty")
	}
	if m == nil {
		return fmt.Errorf("macro %q has no implementation", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("macro %q is already registered", name)
	}
	r.byName[name] = m
	return nil
}

// Lookup returns the macro registered under name.
func (r *Registry) Lookup(name string) (macro.Macro, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered macros.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
