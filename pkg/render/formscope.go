package render

import (
	"context"

	"github.com/alexberriman/react-jedi-sub020/pkg/form"
)

type formScopeKey struct{}

// withFormScope records the form controller owning the current subtree.
func withFormScope(ctx context.Context, controller *form.Controller) context.Context {
	return context.WithValue(ctx, formScopeKey{}, controller)
}

// FormScope returns the nearest enclosing form's controller. Field components
// use it to read current values and per-field error messages.
func FormScope(ctx context.Context) (*form.Controller, bool) {
	controller, ok := ctx.Value(formScopeKey{}).(*form.Controller)
	return controller, ok
}
