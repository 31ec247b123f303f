package timezones

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/alexberriman/react-jedi-sub020/pkg/render"
)

// TypeName is the component type specs use to reference the picker.
const TypeName = "timezone-select"

// Register installs the picker into a component registry under TypeName.
func Register(registry *render.Registry) error {
	set, err := Embedded()
	if err != nil {
		return fmt.Errorf("timezones: load zone list: %w", err)
	}
	return registry.Register(TypeName, New(set))
}

// MustRegister is Register that panics on failure.
func MustRegister(registry *render.Registry) {
	if err := Register(registry); err != nil {
		panic(err)
	}
}

// New builds the picker over an explicit zone set. Props:
//   - name: field name within the enclosing form
//   - region: restrict options to one region prefix, e.g. "Europe"
//   - limit: cap the number of rendered options
func New(set *ZoneSet) render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		name := props.String("name")
		var offered []string
		if region := props.String("region"); region != "" {
			offered = set.Region(region)
		} else {
			offered = set.All()
		}
		if limit, ok := props.Int("limit"); ok && limit > 0 && len(offered) > limit {
			offered = offered[:limit]
		}

		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			selected := ""
			if controller, ok := render.FormScope(ctx); ok && name != "" {
				if value := controller.State().Value(name); value != nil {
					selected = fmt.Sprint(value)
				}
			}

			if _, err := io.WriteString(w, `<select class="jedi-timezone-select"`); err != nil {
				return err
			}
			if name != "" {
				if _, err := io.WriteString(w, ` name="`+templ.EscapeString(name)+`"`); err != nil {
					return err
				}
			}
			if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `>`); err != nil {
				return err
			}
			for _, zone := range offered {
				marker := ""
				if zone == selected {
					marker = " selected"
				}
				escaped := templ.EscapeString(zone)
				if _, err := io.WriteString(w, `<option value="`+escaped+`"`+marker+`>`+escaped+`</option>`); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `</select>`)
			return err
		})
	})
}
