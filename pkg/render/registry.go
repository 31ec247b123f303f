package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps specification type names to component implementations. The
// renderer takes a registry instance as a dependency rather than reading a
// process-wide singleton, so tests and multi-tenant hosts can run isolated
// catalogs side by side.
//
// Registration is expected to finish before concurrent rendering begins;
// reads on the render path take the shared lock only.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Component),
	}
}

// Register adds a component under its type name. A duplicate name returns a
// DuplicateRegistrationError rather than silently overwriting, to catch
// integration bugs early.
func (r *Registry) Register(typeName string, component Component) error {
	if component == nil {
		return fmt.Errorf("render: component is required")
	}
	if typeName == "" {
		return fmt.Errorf("render: component type name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[typeName]; exists {
		return &DuplicateRegistrationError{TypeName: typeName}
	}

	r.components[typeName] = component
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(typeName string, component Component) {
	if err := r.Register(typeName, component); err != nil {
		panic(err)
	}
}

// Get retrieves a component by type name.
func (r *Registry) Get(typeName string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	component, ok := r.components[typeName]
	return component, ok
}

// Has reports whether a type name is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.Get(typeName)
	return ok
}

// List returns a sorted list of registered type names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
