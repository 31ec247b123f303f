package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/alexberriman/react-jedi-sub020/pkg/conditions"
	"github.com/alexberriman/react-jedi-sub020/pkg/form"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// TreeRenderer walks a specification tree depth-first, resolving every node
// through the registry and stitching the resulting components into a tree
// that matches the original nesting. Failures are contained at the node
// boundary: one bad node never blanks the page.
type TreeRenderer struct {
	resolver *Resolver
	cfg      config
}

// New constructs a renderer over the supplied registry.
func New(registry *Registry, options ...Option) *TreeRenderer {
	cfg := config{
		onError: func(error) {},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &TreeRenderer{
		resolver: NewResolver(registry),
		cfg:      cfg,
	}
}

// RenderDocument renders a full specification document to HTML. The
// document's initial state seeds form containers in the tree.
func (r *TreeRenderer) RenderDocument(ctx context.Context, doc *spec.Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("render: document has no root node")
	}
	return r.render(ctx, doc.Root, doc.Initial)
}

// Render renders a single specification node to HTML.
func (r *TreeRenderer) Render(ctx context.Context, node *spec.Node) ([]byte, error) {
	return r.render(ctx, node, nil)
}

func (r *TreeRenderer) render(ctx context.Context, node *spec.Node, initial map[string]any) ([]byte, error) {
	component, err := r.node(ctx, node, "root", initial)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render: write output: %w", err)
	}
	return buf.Bytes(), nil
}

// Component resolves the node tree into a composable templ.Component without
// serialising it, for embedding into a larger page.
func (r *TreeRenderer) Component(ctx context.Context, node *spec.Node) (templ.Component, error) {
	return r.node(ctx, node, "root", nil)
}

// node renders one specification node: resolve, recurse into children, invoke
// the implementation. Resolution failures are contained here per the
// configured mode.
func (r *TreeRenderer) node(ctx context.Context, node *spec.Node, path string, initial map[string]any) (templ.Component, error) {
	if node != nil && node.When != "" {
		visible, err := r.visible(ctx, node.When, initial)
		if err != nil {
			return r.contain(&MalformedNodeError{Path: path, Reason: "when expression: " + err.Error()})
		}
		if !visible {
			return templ.NopComponent, nil
		}
	}

	resolution, err := r.resolver.Resolve(node, path)
	if err != nil {
		return r.contain(err)
	}

	var controller *form.Controller
	if isFormNode(node) {
		controller = form.NewController(node, r.cfg.dispatcher)
		controller.State().MergeSeed(initial, nil)
		controller.State().MergeSeed(r.cfg.seedValues, r.cfg.seedErrors)
		if r.cfg.formObserver != nil {
			r.cfg.formObserver(node.ID, controller)
		}
		ctx = withFormScope(ctx, controller)
	}

	children, err := r.children(ctx, resolution.Children, path, initial)
	if err != nil {
		return nil, err
	}

	component := resolution.Impl.Render(ctx, resolution.Props, resolution.Attrs, children)
	if controller != nil {
		// Components read the form scope from the context they are written
		// with, which is not the walk context. Re-install the scope at write
		// time so field values and errors reach the serialised output.
		inner := component
		component = templ.ComponentFunc(func(wctx context.Context, w io.Writer) error {
			return inner.Render(withFormScope(wctx, controller), w)
		})
	}
	return component, nil
}

// children renders the resolved children variant. Literals terminate the
// recursion; lists preserve specification order.
func (r *TreeRenderer) children(ctx context.Context, children *spec.Children, path string, initial map[string]any) (templ.Component, error) {
	if children == nil {
		return templ.NopComponent, nil
	}

	switch children.Kind {
	case spec.ChildLiteral:
		return textComponent(children.Text), nil
	case spec.ChildNode:
		return r.node(ctx, children.Node, path+".children", initial)
	case spec.ChildList:
		rendered := make([]templ.Component, 0, len(children.List))
		for i := range children.List {
			child := &children.List[i]
			childPath := fmt.Sprintf("%s.children[%d]", path, i)

			var (
				component templ.Component
				err       error
			)
			switch child.Kind {
			case spec.ChildLiteral:
				component = textComponent(child.Text)
			case spec.ChildNode:
				component, err = r.node(ctx, child.Node, childPath, initial)
			case spec.ChildList:
				component, err = r.children(ctx, child, childPath, initial)
			}
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, component)
		}
		return templ.Join(rendered...), nil
	default:
		return r.contain(&MalformedNodeError{Path: path, Reason: "unrecognised children kind"})
	}
}

// visible evaluates a node's `when` condition against the nearest form
// scope's current values layered over the document's initial state.
func (r *TreeRenderer) visible(ctx context.Context, rule string, initial map[string]any) (bool, error) {
	expr, err := conditions.Compile(rule)
	if err != nil {
		return false, err
	}

	values := initial
	if controller, ok := FormScope(ctx); ok {
		merged := make(map[string]any, len(initial))
		for field, value := range initial {
			merged[field] = value
		}
		for field, value := range controller.State().Values() {
			merged[field] = value
		}
		values = merged
	}
	return expr.Eval(values)
}

// contain applies the configured failure mode to a per-node error: propagate
// in strict mode, placeholder in development, silent omission in production.
// The error hook fires in every mode.
func (r *TreeRenderer) contain(err error) (templ.Component, error) {
	r.cfg.onError(err)
	if r.cfg.strict {
		return nil, err
	}
	if r.cfg.development {
		return diagnosticPlaceholder(err), nil
	}
	return templ.NopComponent, nil
}

// isFormNode reports whether a node instantiates a form state container: any
// stateful container carrying form state, validation rules, or a submit
// binding.
func isFormNode(node *spec.Node) bool {
	if node.State != nil || node.Validation != nil {
		return true
	}
	_, ok := node.Handler("onSubmit")
	return ok
}
