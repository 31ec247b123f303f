package form

import (
	"context"
	"errors"
	"sync"

	"github.com/alexberriman/react-jedi-sub020/pkg/actions"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
	"github.com/alexberriman/react-jedi-sub020/pkg/validation"
)

// ErrSubmitInFlight is returned when Submit is called while a previous submit
// is still dispatching its actions. The rejected call is a no-op; the error
// map is never touched.
var ErrSubmitInFlight = errors.New("form: submit already in flight")

// Controller orchestrates one form instance: it owns the state container,
// the compiled validator, and the bound submit handler, and it applies the
// validation mode on change events and the validity gate on submit.
type Controller struct {
	state     *State
	validator *validation.Validator
	submit    *actions.Bound

	submitMu sync.Mutex
	inFlight bool
}

// NewController builds a controller for a form-type spec node. The node's
// `state` block seeds values and pre-filled errors; `validation` compiles
// once; the `onSubmit` binding (when present) resolves through the
// dispatcher.
func NewController(node *spec.Node, dispatcher *actions.Dispatcher) *Controller {
	c := &Controller{
		state:     NewState(node.State),
		validator: validation.New(node.Validation),
	}
	if handler, ok := node.Handler("onSubmit"); ok && dispatcher != nil {
		c.submit = dispatcher.Bind(handler)
	}
	return c
}

// State exposes the form's state container.
func (c *Controller) State() *State {
	return c.state
}

// Validator exposes the compiled validation engine.
func (c *Controller) Validator() *validation.Validator {
	return c.validator
}

// SetValue records a field change. In onChange mode only the changed field is
// re-validated and its single message merged into the error map; unrelated
// fields keep their current messages.
func (c *Controller) SetValue(field string, value any) {
	c.state.SetValue(field, value)
	if c.validator.Mode() != spec.ModeOnChange {
		return
	}
	message, _ := c.validator.ValidateField(field, value)
	c.state.setFieldError(field, message)
}

// Submit runs a full validation pass and, when every field passes, dispatches
// the bound onSubmit actions with the final form values. When any field
// fails, the action list does not execute and the errors stay displayed.
//
// Submit is non-reentrant per form instance: a second call while one is in
// flight returns ErrSubmitInFlight without touching state.
func (c *Controller) Submit(ctx context.Context) (validation.Result, error) {
	c.submitMu.Lock()
	if c.inFlight {
		c.submitMu.Unlock()
		return validation.Result{}, ErrSubmitInFlight
	}
	c.inFlight = true
	c.submitMu.Unlock()

	defer func() {
		c.submitMu.Lock()
		c.inFlight = false
		c.submitMu.Unlock()
	}()

	c.state.setPhase(PhaseValidating)
	values := c.state.Values()
	result := c.validator.ValidateForm(values)

	if !result.Valid {
		c.state.replaceErrors(result.Errors, PhaseInvalid)
		return result, nil
	}

	c.state.replaceErrors(nil, PhaseValid)
	if c.submit != nil {
		event := actions.Event{Name: "submit", FormData: values}
		if err := c.submit.Dispatch(ctx, event); err != nil {
			return result, err
		}
	}
	c.state.setPhase(PhaseSubmitted)
	return result, nil
}
