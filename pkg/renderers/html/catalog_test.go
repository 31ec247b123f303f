package html

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alexberriman/react-jedi-sub020/pkg/render"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

func renderNode(t *testing.T, raw string, options ...render.Option) string {
	t.Helper()
	var node spec.Node
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		t.Fatalf("parse node: %v", err)
	}
	renderer := render.New(NewRegistry(), options...)
	out, err := renderer.Render(context.Background(), &node)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return string(out)
}

func TestCatalogLayoutComponents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "box with class and children",
			raw:  `{"type": "box", "className": "hero", "children": "inside"}`,
			want: []string{`<div`, `class="jedi-box hero"`, `inside</div>`},
		},
		{
			name: "grid columns and gap",
			raw:  `{"type": "grid", "columns": 3, "gap": "1rem", "children": []}`,
			want: []string{`grid-template-columns:repeat(3,minmax(0,1fr))`, `gap:1rem`},
		},
		{
			name: "flex direction",
			raw:  `{"type": "flex", "direction": "column", "justify": "center", "children": []}`,
			want: []string{`display:flex`, `flex-direction:column`, `justify-content:center`},
		},
		{
			name: "separator is void",
			raw:  `{"type": "separator"}`,
			want: []string{`<hr`, `jedi-separator`},
		},
		{
			name: "spacer size",
			raw:  `{"type": "spacer", "size": "2rem"}`,
			want: []string{`height:2rem`, `aria-hidden="true"`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := renderNode(t, tc.raw)
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("output missing %q:\n%s", fragment, got)
				}
			}
		})
	}
}

func TestCatalogHeadingLevels(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"type": "heading", "level": 2, "children": "Title"}`, "<h2"},
		{`{"type": "heading", "children": "Title"}`, "<h1"},
		{`{"type": "heading", "level": 9, "children": "Title"}`, "<h6"},
		{`{"type": "heading", "props": {"level": 3}, "level": 1, "children": "Title"}`, "<h3"},
	}
	for _, tc := range tests {
		got := renderNode(t, tc.raw)
		if !strings.HasPrefix(got, tc.want) {
			t.Errorf("raw %s: got %s, want prefix %s", tc.raw, got, tc.want)
		}
	}
}

func TestCatalogTextElement(t *testing.T) {
	if got := renderNode(t, `{"type": "text", "children": "hi"}`); !strings.HasPrefix(got, "<p") {
		t.Errorf("default text element = %s, want <p", got)
	}
	if got := renderNode(t, `{"type": "text", "element": "span", "children": "hi"}`); !strings.HasPrefix(got, "<span") {
		t.Errorf("span text element = %s", got)
	}
	if got := renderNode(t, `{"type": "text", "element": "marquee", "children": "hi"}`); !strings.HasPrefix(got, "<p") {
		t.Errorf("unsupported element should fall back to p, got %s", got)
	}
}

func TestCatalogButton(t *testing.T) {
	got := renderNode(t, `{"type": "button", "variant": "primary", "disabled": true, "children": "Go"}`)
	for _, fragment := range []string{`<button`, `jedi-button--primary`, `type="button"`, `disabled`, `>Go</button>`} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}

	submit := renderNode(t, `{"type": "button", "props": {"type": "submit"}, "children": "Send"}`)
	if !strings.Contains(submit, `type="submit"`) {
		t.Errorf("submit button output: %s", submit)
	}
}

func TestCatalogImageAndAvatar(t *testing.T) {
	img := renderNode(t, `{"type": "image", "src": "/a.png", "alt": "A", "width": 40}`)
	for _, fragment := range []string{`<img`, `src="/a.png"`, `alt="A"`, `width="40"`} {
		if !strings.Contains(img, fragment) {
			t.Errorf("image missing %q: %s", fragment, img)
		}
	}

	avatar := renderNode(t, `{"type": "avatar", "fallback": "Ada Lovelace"}`)
	if !strings.Contains(avatar, ">AL</span>") {
		t.Errorf("avatar fallback initials missing: %s", avatar)
	}
}

func TestCatalogRawHTMLSanitised(t *testing.T) {
	got := renderNode(t, `{"type": "html", "props": {"content": "<b>bold</b><script>alert(1)</script><a href=\"javascript:x\">x</a>"}}`)
	if !strings.Contains(got, "<b>bold</b>") {
		t.Errorf("safe markup stripped: %s", got)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "javascript:") {
		t.Errorf("active content survived sanitising: %s", got)
	}
}

func TestCatalogHostAttributesForwarded(t *testing.T) {
	got := renderNode(t, `{
		"type": "card",
		"id": "main",
		"testId": "card-1",
		"data": {"track": "hero"},
		"a11y": {"ariaLabel": "Main card"},
		"style": {"color": "red"}
	}`)
	for _, fragment := range []string{`id="main"`, `data-testid="card-1"`, `data-track="hero"`, `aria-label="Main card"`, `color: red`} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}
