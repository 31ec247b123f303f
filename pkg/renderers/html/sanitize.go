package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"github.com/alexberriman/react-jedi-sub020/pkg/render"
)

// rawHTMLComponent injects author-supplied markup from the content prop after
// sanitising it. The UGC policy strips scripts, event handlers, and other
// active content while keeping common formatting tags.
func rawHTMLComponent() render.Component {
	policy := bluemonday.UGCPolicy()
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		raw := props.String("content")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if err := openTag(ctx, w, "div", "jedi-html", attrs); err != nil {
				return err
			}
			if _, err := io.WriteString(w, policy.Sanitize(raw)); err != nil {
				return err
			}
			_, err := io.WriteString(w, "</div>")
			return err
		})
	})
}
