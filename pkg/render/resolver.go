package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// Resolution is the outcome of resolving one specification node: the
// implementation to invoke, the merged props, the host-element attributes,
// and the children left for the tree renderer to recurse into.
type Resolution struct {
	Impl     Component
	Props    Props
	Attrs    templ.Attributes
	Children *spec.Children
}

// Resolver turns specification nodes into render invocations. It is a pure
// function over the node and the registry snapshot; it performs no I/O and
// mutates nothing.
type Resolver struct {
	registry *Registry
}

// NewResolver constructs a resolver over the supplied registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve looks up the node's type, merges its props, and normalises its
// children. Prop merge precedence is total and uniform: top-level convenience
// fields lose to same-named keys inside `props`.
func (r *Resolver) Resolve(node *spec.Node, path string) (Resolution, error) {
	if node == nil {
		return Resolution{}, &MalformedNodeError{Path: path, Reason: "node is nil"}
	}
	if node.Type == "" {
		return Resolution{}, &MalformedNodeError{Path: path, Reason: "missing type"}
	}

	impl, ok := r.registry.Get(node.Type)
	if !ok {
		return Resolution{}, &UnknownTypeError{TypeName: node.Type, Path: path}
	}

	props := make(Props, len(node.Convenience)+len(node.Props))
	for key, value := range node.Convenience {
		props[key] = value
	}
	for key, value := range node.Props {
		props[key] = value
	}

	children := node.Children
	if children == nil && node.Content != "" {
		children = spec.LiteralChild(node.Content)
	}

	return Resolution{
		Impl:     impl,
		Props:    props,
		Attrs:    hostAttributes(node),
		Children: children,
	}, nil
}

// hostAttributes builds the HTML attributes forwarded to the component's host
// element from the node's presentation passthroughs.
func hostAttributes(node *spec.Node) templ.Attributes {
	attrs := templ.Attributes{}

	if node.ID != "" {
		attrs["id"] = node.ID
	}
	if node.ClassName != "" {
		attrs["class"] = node.ClassName
	}
	if len(node.Style) > 0 {
		attrs["style"] = inlineStyle(node.Style)
	}
	for key, value := range node.Data {
		attrs["data-"+key] = value
	}
	if node.TestID != "" {
		attrs["data-testid"] = node.TestID
	}
	for key, value := range node.A11y {
		if name, ok := a11yAttributeNames[key]; ok {
			attrs[name] = fmt.Sprint(value)
		}
	}

	return attrs
}

// a11yAttributeNames maps the specification's camelCase accessibility keys to
// their HTML attribute names.
var a11yAttributeNames = map[string]string{
	"ariaLabel":       "aria-label",
	"ariaDescribedBy": "aria-describedby",
	"ariaControls":    "aria-controls",
	"ariaExpanded":    "aria-expanded",
	"ariaHidden":      "aria-hidden",
	"ariaLive":        "aria-live",
	"ariaAtomic":      "aria-atomic",
	"hasPopup":        "aria-haspopup",
	"tabIndex":        "tabindex",
	"role":            "role",
}

// inlineStyle renders a style map as a CSS declaration list with a stable
// property order.
func inlineStyle(style map[string]string) string {
	properties := make([]string, 0, len(style))
	for property := range style {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	var b strings.Builder
	for i, property := range properties {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(property)
		b.WriteString(": ")
		b.WriteString(style[property])
	}
	return b.String()
}
