package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/alexberriman/react-jedi-sub020/pkg/render"
)

// formComponent renders the form element itself. The tree renderer has
// already created the form's state container and put it in scope for the
// subtree by the time this runs.
func formComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			merged := withAttr(attrs, "method", props.StringOr("method", "post"))
			if action := props.String("action"); action != "" {
				merged = withAttr(merged, "action", action)
			}
			merged = withAttr(merged, "novalidate", true)
			return element(ctx, w, "form", "jedi-form", merged, children)
		})
	})
}

// fieldState resolves the current value and error message for a named field
// from the enclosing form scope. Outside any form both come back empty.
func fieldState(ctx context.Context, name string) (value any, message string, invalid bool) {
	controller, ok := render.FormScope(ctx)
	if !ok || name == "" {
		return nil, "", false
	}
	value = controller.State().Value(name)
	message, invalid = controller.State().Error(name)
	return value, message, invalid
}

// fieldWrapper emits the shared field chrome: the control followed by its
// error message when one is displayed.
func fieldWrapper(ctx context.Context, w io.Writer, name, message string, invalid bool, control func() error) error {
	if _, err := io.WriteString(w, `<div class="jedi-field">`); err != nil {
		return err
	}
	if err := control(); err != nil {
		return err
	}
	if invalid {
		errorID := fieldErrorID(name)
		_, err := io.WriteString(w,
			`<p class="jedi-field-error" id="`+templ.EscapeString(errorID)+`">`+
				templ.EscapeString(message)+`</p>`)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</div>`)
	return err
}

func fieldErrorID(name string) string {
	return name + "-error"
}

// controlAttrs layers the invalid-state ARIA wiring onto a control's
// attributes.
func controlAttrs(attrs templ.Attributes, name string, invalid bool) templ.Attributes {
	merged := withAttr(attrs, "name", name)
	if invalid {
		merged = withAttr(merged, "aria-invalid", "true")
		merged = withAttr(merged, "aria-describedby", fieldErrorID(name))
	}
	return merged
}

func inputComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		name := props.String("name")
		inputType := props.StringOr("inputType", "text")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			value, message, invalid := fieldState(ctx, name)
			return fieldWrapper(ctx, w, name, message, invalid, func() error {
				merged := controlAttrs(attrs, name, invalid)
				merged = withAttr(merged, "type", inputType)
				if value != nil {
					merged = withAttr(merged, "value", fmt.Sprint(value))
				}
				if placeholder := props.String("placeholder"); placeholder != "" {
					merged = withAttr(merged, "placeholder", placeholder)
				}
				if props.Bool("disabled") {
					merged = withAttr(merged, "disabled", true)
				}
				return voidElement(ctx, w, "input", "jedi-input", merged)
			})
		})
	})
}

func textareaComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		name := props.String("name")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			value, message, invalid := fieldState(ctx, name)
			return fieldWrapper(ctx, w, name, message, invalid, func() error {
				merged := controlAttrs(attrs, name, invalid)
				if rows, ok := props.Int("rows"); ok {
					merged = withAttr(merged, "rows", fmt.Sprint(rows))
				}
				if placeholder := props.String("placeholder"); placeholder != "" {
					merged = withAttr(merged, "placeholder", placeholder)
				}
				var body templ.Component
				if value != nil {
					body = textLiteral(fmt.Sprint(value))
				}
				return element(ctx, w, "textarea", "jedi-textarea", merged, body)
			})
		})
	})
}

func checkboxComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		name := props.String("name")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			value, message, invalid := fieldState(ctx, name)
			return fieldWrapper(ctx, w, name, message, invalid, func() error {
				merged := controlAttrs(attrs, name, invalid)
				merged = withAttr(merged, "type", "checkbox")
				if checked, ok := value.(bool); ok && checked {
					merged = withAttr(merged, "checked", true)
				}
				return voidElement(ctx, w, "input", "jedi-checkbox", merged)
			})
		})
	})
}

// selectComponent reads its options from props: a list of strings or of
// {value, label} objects.
func selectComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		name := props.String("name")
		options := selectOptions(props["options"])
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			value, message, invalid := fieldState(ctx, name)
			selected := ""
			if value != nil {
				selected = fmt.Sprint(value)
			}
			return fieldWrapper(ctx, w, name, message, invalid, func() error {
				merged := controlAttrs(attrs, name, invalid)
				if err := openTag(ctx, w, "select", "jedi-select", merged); err != nil {
					return err
				}
				if placeholder := props.String("placeholder"); placeholder != "" {
					_, err := io.WriteString(w,
						`<option value="" disabled`+selectedMarker(selected == "")+`>`+
							templ.EscapeString(placeholder)+`</option>`)
					if err != nil {
						return err
					}
				}
				for _, option := range options {
					_, err := io.WriteString(w,
						`<option value="`+templ.EscapeString(option.value)+`"`+
							selectedMarker(option.value == selected && selected != "")+`>`+
							templ.EscapeString(option.label)+`</option>`)
					if err != nil {
						return err
					}
				}
				_, err := io.WriteString(w, `</select>`)
				return err
			})
		})
	})
}

func selectedMarker(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}

type selectOption struct {
	value string
	label string
}

func selectOptions(raw any) []selectOption {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	options := make([]selectOption, 0, len(list))
	for _, item := range list {
		switch opt := item.(type) {
		case string:
			options = append(options, selectOption{value: opt, label: opt})
		case map[string]any:
			value, _ := opt["value"].(string)
			label, _ := opt["label"].(string)
			if label == "" {
				label = value
			}
			options = append(options, selectOption{value: value, label: label})
		}
	}
	return options
}

func labelComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			merged := attrs
			if target := props.String("htmlFor"); target != "" {
				merged = withAttr(merged, "for", target)
			}
			return element(ctx, w, "label", "jedi-label", merged, children)
		})
	})
}
