// Package html provides the built-in HTML component catalog: layout,
// typography, and form-control implementations for the standard component
// types, plus a sanitised raw-content component. Hosts register the catalog
// into a render.Registry and may override or extend any entry.
package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// element emits `<tag attrs>children</tag>`. The extra class, when non-empty,
// merges with any class the node already carries.
func element(ctx context.Context, w io.Writer, tag, class string, attrs templ.Attributes, children templ.Component) error {
	if err := openTag(ctx, w, tag, class, attrs); err != nil {
		return err
	}
	if children != nil {
		if err := children.Render(ctx, w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// voidElement emits `<tag attrs>` for elements that take no children.
func voidElement(ctx context.Context, w io.Writer, tag, class string, attrs templ.Attributes) error {
	return openTag(ctx, w, tag, class, attrs)
}

func openTag(ctx context.Context, w io.Writer, tag, class string, attrs templ.Attributes) error {
	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := templ.RenderAttributes(ctx, w, withClass(attrs, class)); err != nil {
		return err
	}
	_, err := io.WriteString(w, ">")
	return err
}

// withClass prepends the component's own class to the node-supplied one.
func withClass(attrs templ.Attributes, class string) templ.Attributes {
	if class == "" {
		return attrs
	}
	merged := make(templ.Attributes, len(attrs)+1)
	for key, value := range attrs {
		merged[key] = value
	}
	if existing, ok := merged["class"].(string); ok && existing != "" {
		merged["class"] = class + " " + existing
	} else {
		merged["class"] = class
	}
	return merged
}

// withAttr sets an attribute unless the node already supplies it.
func withAttr(attrs templ.Attributes, key string, value any) templ.Attributes {
	if _, ok := attrs[key]; ok {
		return attrs
	}
	merged := make(templ.Attributes, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged[key] = value
	return merged
}
