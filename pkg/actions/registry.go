// Package actions resolves declarative action kinds to executable
// implementations and dispatches ordered action lists bound to UI events.
package actions

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
)

// Event carries the runtime context an action receives when its bound event
// fires.
type Event struct {
	// Name is the symbolic handler name from the specification.
	Name string

	// FormData holds the enclosing form's values at dispatch time. Nil for
	// events outside a form.
	FormData map[string]any
}

// Action is one atomic, named side-effecting operation. Params are the
// kind-specific keys from the action's specification object.
type Action func(ctx context.Context, params map[string]any, event Event) error

// DuplicateRegistrationError reports a second registration for an action kind.
// Registration collisions indicate an integration bug in the host application,
// so Register raises this instead of silently overwriting.
type DuplicateRegistrationError struct {
	Kind string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("actions: kind %q already registered", e.Kind)
}

// Option configures the registry.
type Option func(*Registry)

// WithLogger overrides the logger used by the built-in console action.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry stores action implementations by kind. The built-in `console` kind
// is registered at construction; applications extend the set with Register.
// Mutation is expected to finish before rendering begins.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	logger  *log.Logger
}

// NewRegistry constructs a registry with the built-in actions registered.
func NewRegistry(options ...Option) *Registry {
	r := &Registry{
		actions: make(map[string]Action),
		logger:  log.New(os.Stdout, "", log.LstdFlags),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	r.actions["console"] = consoleAction(r.logger)
	return r
}

// Register adds an action implementation by kind. A duplicate kind returns a
// DuplicateRegistrationError.
func (r *Registry) Register(kind string, action Action) error {
	if action == nil {
		return fmt.Errorf("actions: action is required")
	}
	if kind == "" {
		return fmt.Errorf("actions: kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[kind]; exists {
		return &DuplicateRegistrationError{Kind: kind}
	}

	r.actions[kind] = action
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind string, action Action) {
	if err := r.Register(kind, action); err != nil {
		panic(err)
	}
}

// Get retrieves an action by kind.
func (r *Registry) Get(kind string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, ok := r.actions[kind]
	return action, ok
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.Get(kind)
	return ok
}

// List returns a sorted list of registered kinds.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.actions))
	for kind := range r.actions {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// consoleAction logs a message at the requested level. Params: `message`
// (string) and optional `level` (log, info, warn, error).
func consoleAction(logger *log.Logger) Action {
	return func(_ context.Context, params map[string]any, _ Event) error {
		level, _ := params["level"].(string)
		if level == "" {
			level = "log"
		}
		message, _ := params["message"].(string)
		logger.Printf("[%s] %s", level, message)
		return nil
	}
}
