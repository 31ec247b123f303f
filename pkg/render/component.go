// Package render implements the specification-to-render engine: a component
// registry, a pure spec resolver, and a recursive tree renderer that walks a
// specification depth-first and stitches resolved components into HTML.
package render

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// Props is the merged configuration forwarded to a resolved component:
// top-level convenience fields overlaid by the node's explicit `props` map.
type Props map[string]any

// String returns a string prop, or empty when absent or differently typed.
func (p Props) String(key string) string {
	value, _ := p[key].(string)
	return value
}

// StringOr returns a string prop with a fallback.
func (p Props) StringOr(key, fallback string) string {
	if value, ok := p[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// Bool returns a bool prop; absent or differently typed values are false.
func (p Props) Bool(key string) bool {
	value, _ := p[key].(bool)
	return value
}

// Int returns an integer prop, accepting the float64 values JSON decoding
// produces as well as numeric strings.
func (p Props) Int(key string) (int, bool) {
	switch value := p[key].(type) {
	case int:
		return value, true
	case float64:
		return int(value), true
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// IntOr returns an integer prop with a fallback.
func (p Props) IntOr(key string, fallback int) int {
	if value, ok := p.Int(key); ok {
		return value
	}
	return fallback
}

// Component is a renderable implementation resolved from the registry by type
// name. The walk context carries the nearest form scope; children arrive
// already rendered and preserve specification order.
type Component interface {
	Render(ctx context.Context, props Props, attrs templ.Attributes, children templ.Component) templ.Component
}

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc func(ctx context.Context, props Props, attrs templ.Attributes, children templ.Component) templ.Component

// Render implements Component.
func (f ComponentFunc) Render(ctx context.Context, props Props, attrs templ.Attributes, children templ.Component) templ.Component {
	return f(ctx, props, attrs, children)
}
