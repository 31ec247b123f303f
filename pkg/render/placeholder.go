package render

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"
)

// textComponent renders a literal child as escaped text.
func textComponent(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(text))
		return err
	})
}

// diagnosticPlaceholder renders a visible stand-in for a node that failed to
// resolve. Development builds show it where the node would have appeared so
// the failure is obvious while authoring specs.
func diagnosticPlaceholder(cause error) templ.Component {
	label := "Render error"
	detail := cause.Error()

	var unknown *UnknownTypeError
	if errors.As(cause, &unknown) {
		label = "Unknown component: " + unknown.TypeName
		detail = "at " + unknown.Path
	}
	var malformed *MalformedNodeError
	if errors.As(cause, &malformed) {
		label = "Malformed node"
		detail = malformed.Reason + " at " + malformed.Path
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<div style="background:#fef3c7;border:1px solid #f59e0b;color:#92400e;padding:8px;font-family:monospace" role="alert">`+
				`<strong>`+templ.EscapeString(label)+`</strong> `+
				templ.EscapeString(detail)+
				`</div>`)
		return err
	})
}
