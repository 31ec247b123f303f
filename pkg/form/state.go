// Package form holds per-form runtime state: the current field values, the
// error map, and the interaction lifecycle driving validation and submit
// gating. Each form instance owns its state exclusively; there is no
// cross-form sharing.
package form

import (
	"sync"

	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// Phase is the form lifecycle state.
type Phase string

const (
	// PhasePristine is the initial state, seeded from the spec's defaults.
	PhasePristine Phase = "pristine"
	// PhaseDirty is entered after any field change.
	PhaseDirty Phase = "dirty"
	// PhaseValidating is the transient state during a full validation pass.
	PhaseValidating Phase = "validating"
	// PhaseValid follows a passing validation pass.
	PhaseValid Phase = "valid"
	// PhaseInvalid follows a failing validation pass; errors stay displayed.
	PhaseInvalid Phase = "invalid"
	// PhaseSubmitted is reached after a valid submit's actions have run.
	PhaseSubmitted Phase = "submitted"
)

// State is one form instance's mutable value and error store. It lives for
// the mounted lifetime of the form node.
type State struct {
	mu     sync.Mutex
	values map[string]any
	errors map[string]string
	phase  Phase
}

// NewState seeds a state container from the spec node's `state` block.
// Pre-seeded errors display immediately, before any validation pass runs.
func NewState(seed *spec.NodeState) *State {
	s := &State{
		values: make(map[string]any),
		errors: make(map[string]string),
		phase:  PhasePristine,
	}
	if seed != nil {
		for field, value := range seed.FormData {
			s.values[field] = value
		}
		for field, message := range seed.Errors {
			s.errors[field] = message
		}
	}
	return s
}

// MergeSeed layers additional seed values and pre-filled errors on top of the
// container without advancing the lifecycle: a seeded form is still pristine.
// Existing entries for the same field are overwritten.
func (s *State) MergeSeed(values map[string]any, errors map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for field, value := range values {
		s.values[field] = value
	}
	for field, message := range errors {
		s.errors[field] = message
	}
}

// Value returns the current value for a field.
func (s *State) Value(field string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[field]
}

// SetValue records a field change and moves the form to Dirty.
func (s *State) SetValue(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
	s.phase = PhaseDirty
}

// Values returns a copy of the current field values.
func (s *State) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	for field, value := range s.values {
		out[field] = value
	}
	return out
}

// Error returns the displayed message for a field, if any.
func (s *State) Error(field string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.errors[field]
	return message, ok
}

// Errors returns a copy of the current error map.
func (s *State) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for field, message := range s.errors {
		out[field] = message
	}
	return out
}

// Phase reports the current lifecycle state.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// setFieldError merges a single field's validation outcome into the error
// map without touching unrelated fields.
func (s *State) setFieldError(field, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		delete(s.errors, field)
		return
	}
	s.errors[field] = message
}

// replaceErrors swaps the full error map after a form-wide validation pass
// and records the resulting phase.
func (s *State) replaceErrors(errors map[string]string, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errors))
	for field, message := range errors {
		s.errors[field] = message
	}
	s.phase = phase
}

func (s *State) setPhase(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}
