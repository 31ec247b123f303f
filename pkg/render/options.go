package render

import (
	"github.com/alexberriman/react-jedi-sub020/pkg/actions"
	"github.com/alexberriman/react-jedi-sub020/pkg/form"
)

// Option configures a TreeRenderer.
type Option func(*config)

type config struct {
	development  bool
	strict       bool
	onError      func(err error)
	dispatcher   *actions.Dispatcher
	seedValues   map[string]any
	seedErrors   map[string]string
	formObserver func(formID string, controller *form.Controller)
}

// WithDevelopment toggles visible diagnostics: unknown-type and malformed
// nodes render labelled placeholder boxes instead of being omitted. Meant for
// non-production builds.
func WithDevelopment(enabled bool) Option {
	return func(cfg *config) {
		cfg.development = enabled
	}
}

// WithStrict makes resolution failures abort the render with an error instead
// of containing them per node.
func WithStrict(enabled bool) Option {
	return func(cfg *config) {
		cfg.strict = enabled
	}
}

// WithOnError installs a hook receiving every contained per-node failure.
func WithOnError(hook func(err error)) Option {
	return func(cfg *config) {
		if hook != nil {
			cfg.onError = hook
		}
	}
}

// WithDispatcher supplies the action dispatcher used to bind declarative
// event handlers on form nodes.
func WithDispatcher(dispatcher *actions.Dispatcher) Option {
	return func(cfg *config) {
		cfg.dispatcher = dispatcher
	}
}

// WithSeedValues pre-populates rendered form controls, e.g. when re-rendering
// after a server-side submit.
func WithSeedValues(values map[string]any) Option {
	return func(cfg *config) {
		cfg.seedValues = values
	}
}

// WithSeedErrors surfaces server-side validation feedback keyed by field name.
func WithSeedErrors(errors map[string]string) Option {
	return func(cfg *config) {
		cfg.seedErrors = errors
	}
}

// WithFormObserver installs a hook invoked for every form state container the
// renderer instantiates, keyed by the form node's id. Hosts use it to drive
// submits against the same instance they rendered.
func WithFormObserver(observer func(formID string, controller *form.Controller)) Option {
	return func(cfg *config) {
		cfg.formObserver = observer
	}
}
