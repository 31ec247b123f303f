// Package jedi renders server-driven UI specifications: JSON or YAML
// documents describing a component tree, form state, validation rules, and
// declarative event handlers. The root package re-exports the common types
// and offers one-call entry points; the pkg/ packages expose each stage for
// callers that need to compose them directly.
package jedi

import (
	"context"

	"github.com/alexberriman/react-jedi-sub020/pkg/actions"
	"github.com/alexberriman/react-jedi-sub020/pkg/render"
	"github.com/alexberriman/react-jedi-sub020/pkg/renderers/html"
	"github.com/alexberriman/react-jedi-sub020/pkg/schema"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// Node is one component node of a specification tree.
type Node = spec.Node

// Document is a full specification: a root node plus version and initial
// state.
type Document = spec.Document

// Registry maps component type names to implementations.
type Registry = render.Registry

// Component is a renderable component implementation.
type Component = render.Component

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc = render.ComponentFunc

// Props is the merged prop map a component receives.
type Props = render.Props

// Option configures the tree renderer.
type Option = render.Option

// Renderer re-exports the tree renderer.
type Renderer = render.TreeRenderer

// ActionRegistry maps action kinds to implementations.
type ActionRegistry = actions.Registry

// Dispatcher binds and executes declarative handler action lists.
type Dispatcher = actions.Dispatcher

// DefaultRegistry returns a registry pre-populated with the built-in HTML
// component catalog.
func DefaultRegistry() *Registry {
	return html.NewRegistry()
}

// NewRenderer constructs a tree renderer over the default catalog.
func NewRenderer(options ...Option) *Renderer {
	return render.New(DefaultRegistry(), options...)
}

// RenderHTML parses a raw JSON specification and renders it with the default
// catalog. It is the simplest entry point for callers that just want HTML
// output from a document in hand.
func RenderHTML(ctx context.Context, raw []byte, options ...Option) ([]byte, error) {
	doc, err := spec.ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	return NewRenderer(options...).RenderDocument(ctx, doc)
}

// RenderHTMLDocument renders a pre-parsed document, bypassing the parse stage.
func RenderHTMLDocument(ctx context.Context, doc *Document, options ...Option) ([]byte, error) {
	return NewRenderer(options...).RenderDocument(ctx, doc)
}

// CheckDocument validates a raw specification and reports every structural
// issue found, without rendering anything.
func CheckDocument(ctx context.Context, raw []byte) (schema.Result, error) {
	return schema.NewChecker().Check(ctx, raw)
}

// NewActionRegistry constructs an action registry with the built-in console
// action installed.
func NewActionRegistry(options ...actions.Option) *ActionRegistry {
	return actions.NewRegistry(options...)
}

// NewDispatcher constructs a dispatcher over an action registry.
func NewDispatcher(registry *ActionRegistry, options ...actions.DispatcherOption) *Dispatcher {
	return actions.NewDispatcher(registry, options...)
}
