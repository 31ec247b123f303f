package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// WarnFunc receives non-fatal dispatcher diagnostics (unknown action kinds).
type WarnFunc func(message string)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithWarnFunc installs a hook for non-fatal diagnostics. The default hook
// discards them.
func WithWarnFunc(warn WarnFunc) DispatcherOption {
	return func(d *Dispatcher) {
		if warn != nil {
			d.warn = warn
		}
	}
}

// Dispatcher turns declarative handler specifications into bound handlers.
// Binding resolves each action kind against the registry exactly once, so
// firing the event does not re-parse the specification.
type Dispatcher struct {
	registry *Registry
	warn     WarnFunc
}

// NewDispatcher constructs a dispatcher over the supplied registry.
func NewDispatcher(registry *Registry, options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		warn:     func(string) {},
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Bound is a handler specification resolved into ordered callables. Dispatch
// runs them synchronously in list order.
type Bound struct {
	// Handler is the symbolic event name from the specification.
	Handler string

	// PreventDefault mirrors the specification flag. The transport layer that
	// owns the native event applies it before Dispatch runs.
	PreventDefault bool

	steps []boundStep
}

type boundStep struct {
	kind   string
	action Action
	params map[string]any
}

// Bind resolves a handler specification. Unknown action kinds are reported
// through the warn hook and skipped; the remaining actions still bind in
// order, so one bad entry never disables the list.
func (d *Dispatcher) Bind(handler spec.HandlerSpec) *Bound {
	bound := &Bound{
		Handler:        handler.Handler,
		PreventDefault: handler.PreventDefault,
	}

	for _, action := range handler.Actions {
		impl, ok := d.registry.Get(action.Kind)
		if !ok {
			d.warn(fmt.Sprintf("actions: unknown action kind %q for handler %q", action.Kind, handler.Handler))
			continue
		}
		bound.steps = append(bound.steps, boundStep{
			kind:   action.Kind,
			action: impl,
			params: action.Params,
		})
	}

	return bound
}

// Len reports the number of resolved actions.
func (b *Bound) Len() int {
	return len(b.steps)
}

// Dispatch executes the bound actions synchronously in list order. A failing
// action does not stop the remaining ones; failures are joined into the
// returned error. Asynchronous action kinds are fired without awaiting —
// their completion and timeout policy belongs to the action implementation.
func (b *Bound) Dispatch(ctx context.Context, event Event) error {
	var errs []error
	for _, step := range b.steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := step.action(ctx, step.params, event); err != nil {
			errs = append(errs, fmt.Errorf("actions: %s: %w", step.kind, err))
		}
	}
	return errors.Join(errs...)
}
