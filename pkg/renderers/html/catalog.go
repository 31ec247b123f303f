package html

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/alexberriman/react-jedi-sub020/pkg/render"
)

// Canonical component type names registered by the default catalog.
const (
	NameBox        = "box"
	NameContainer  = "container"
	NameGrid       = "grid"
	NameFlex       = "flex"
	NameSeparator  = "separator"
	NameSpacer     = "spacer"
	NameHeading    = "heading"
	NameText       = "text"
	NameBlockquote = "blockquote"
	NameButton     = "button"
	NameCard       = "card"
	NameBadge      = "badge"
	NameImage      = "image"
	NameAvatar     = "avatar"
	NameSkeleton   = "skeleton"
	NameHTML       = "html"
	NameForm       = "form"
	NameInput      = "input"
	NameTextarea   = "textarea"
	NameCheckbox   = "checkbox"
	NameSelect     = "select"
	NameLabel      = "label"
)

// NewRegistry builds a registry pre-populated with the default catalog.
func NewRegistry() *render.Registry {
	registry := render.NewRegistry()
	RegisterDefaults(registry)
	return registry
}

// RegisterDefaults installs every built-in component into an existing
// registry. It panics on name collisions, so call it before host-specific
// registrations.
func RegisterDefaults(registry *render.Registry) {
	registry.MustRegister(NameBox, taggedElement("div", "jedi-box"))
	registry.MustRegister(NameContainer, taggedElement("div", "jedi-container"))
	registry.MustRegister(NameGrid, gridComponent())
	registry.MustRegister(NameFlex, flexComponent())
	registry.MustRegister(NameSeparator, separatorComponent())
	registry.MustRegister(NameSpacer, spacerComponent())
	registry.MustRegister(NameHeading, headingComponent())
	registry.MustRegister(NameText, textElementComponent())
	registry.MustRegister(NameBlockquote, taggedElement("blockquote", "jedi-blockquote"))
	registry.MustRegister(NameButton, buttonComponent())
	registry.MustRegister(NameCard, taggedElement("section", "jedi-card"))
	registry.MustRegister(NameBadge, taggedElement("span", "jedi-badge"))
	registry.MustRegister(NameImage, imageComponent())
	registry.MustRegister(NameAvatar, avatarComponent())
	registry.MustRegister(NameSkeleton, taggedElement("div", "jedi-skeleton"))
	registry.MustRegister(NameHTML, rawHTMLComponent())

	registry.MustRegister(NameForm, formComponent())
	registry.MustRegister(NameInput, inputComponent())
	registry.MustRegister(NameTextarea, textareaComponent())
	registry.MustRegister(NameCheckbox, checkboxComponent())
	registry.MustRegister(NameSelect, selectComponent())
	registry.MustRegister(NameLabel, labelComponent())
}

// taggedElement covers the components that are a fixed tag plus a catalog
// class with no prop handling of their own.
func taggedElement(tag, class string) render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return element(ctx, w, tag, class, attrs, children)
		})
	})
}

func gridComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		columns := props.IntOr("columns", 1)
		style := fmt.Sprintf("display:grid;grid-template-columns:repeat(%d,minmax(0,1fr))", columns)
		if gap := props.String("gap"); gap != "" {
			style += ";gap:" + gap
		}
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return element(ctx, w, "div", "jedi-grid", withAttr(attrs, "style", style), children)
		})
	})
}

func flexComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		style := "display:flex"
		if direction := props.String("direction"); direction != "" {
			style += ";flex-direction:" + direction
		}
		if align := props.String("align"); align != "" {
			style += ";align-items:" + align
		}
		if justify := props.String("justify"); justify != "" {
			style += ";justify-content:" + justify
		}
		if gap := props.String("gap"); gap != "" {
			style += ";gap:" + gap
		}
		if props.Bool("wrap") {
			style += ";flex-wrap:wrap"
		}
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return element(ctx, w, "div", "jedi-flex", withAttr(attrs, "style", style), children)
		})
	})
}

func separatorComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return voidElement(ctx, w, "hr", "jedi-separator", attrs)
		})
	})
}

func spacerComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		size := props.StringOr("size", "1rem")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			merged := withAttr(attrs, "style", "height:"+size)
			merged = withAttr(merged, "aria-hidden", "true")
			return element(ctx, w, "div", "jedi-spacer", merged, nil)
		})
	})
}

// headingComponent clamps the level prop to h1 through h6.
func headingComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		level := props.IntOr("level", 1)
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		tag := fmt.Sprintf("h%d", level)
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return element(ctx, w, tag, "jedi-heading", attrs, children)
		})
	})
}

// textElementComponent renders as a paragraph by default; the element prop
// picks span or div for inline and block variants.
func textElementComponent() render.Component {
	allowed := map[string]bool{"p": true, "span": true, "div": true, "small": true, "strong": true, "em": true}
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		tag := props.StringOr("element", "p")
		if !allowed[tag] {
			tag = "p"
		}
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return element(ctx, w, tag, "jedi-text", attrs, children)
		})
	})
}

func buttonComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		buttonType := props.StringOr("type", "button")
		class := "jedi-button"
		if variant := props.String("variant"); variant != "" {
			class += " jedi-button--" + variant
		}
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			merged := withAttr(attrs, "type", buttonType)
			if props.Bool("disabled") {
				merged = withAttr(merged, "disabled", true)
			}
			return element(ctx, w, "button", class, merged, children)
		})
	})
}

func imageComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			merged := withAttr(attrs, "src", props.String("src"))
			merged = withAttr(merged, "alt", props.String("alt"))
			if width, ok := props.Int("width"); ok {
				merged = withAttr(merged, "width", fmt.Sprint(width))
			}
			if height, ok := props.Int("height"); ok {
				merged = withAttr(merged, "height", fmt.Sprint(height))
			}
			return voidElement(ctx, w, "img", "jedi-image", merged)
		})
	})
}

// avatarComponent renders the image when src is set, otherwise the initials
// fallback.
func avatarComponent() render.Component {
	return render.ComponentFunc(func(ctx context.Context, props render.Props, attrs templ.Attributes, children templ.Component) templ.Component {
		src := props.String("src")
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if src != "" {
				merged := withAttr(attrs, "src", src)
				merged = withAttr(merged, "alt", props.String("alt"))
				return voidElement(ctx, w, "img", "jedi-avatar", merged)
			}
			initials := initialsFrom(props.StringOr("fallback", props.String("alt")))
			return element(ctx, w, "span", "jedi-avatar jedi-avatar--fallback", attrs, textLiteral(initials))
		})
	})
}

func initialsFrom(name string) string {
	var initials strings.Builder
	for _, word := range strings.Fields(name) {
		first := []rune(word)[0]
		initials.WriteString(strings.ToUpper(string(first)))
		if initials.Len() >= 2 {
			break
		}
	}
	if initials.Len() == 0 {
		return "?"
	}
	return initials.String()
}

func textLiteral(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(text))
		return err
	})
}
