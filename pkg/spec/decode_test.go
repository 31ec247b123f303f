package spec

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument_BareNode(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"type": "heading", "content": "Title", "level": 2}`))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if doc.Root == nil {
		t.Fatal("expected root node")
	}
	if doc.Root.Type != "heading" {
		t.Fatalf("type mismatch: %q", doc.Root.Type)
	}
	if doc.Root.Content != "Title" {
		t.Fatalf("content mismatch: %q", doc.Root.Content)
	}
	if got := doc.Root.Convenience["level"]; got != float64(2) {
		t.Fatalf("convenience level mismatch: %v", got)
	}
}

func TestParseDocument_Envelope(t *testing.T) {
	payload := `{
		"version": "1.0",
		"root": {"type": "container", "children": [{"type": "text", "content": "Body"}]},
		"state": {"initial": {"user": "ada"}}
	}`
	doc, err := ParseDocument([]byte(payload))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if doc.Version != "1.0" {
		t.Fatalf("version mismatch: %q", doc.Version)
	}
	if doc.Root == nil || doc.Root.Type != "container" {
		t.Fatalf("root mismatch: %+v", doc.Root)
	}
	if diff := cmp.Diff(map[string]any{"user": "ada"}, doc.Initial); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDocument_MissingRoot(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"version": "1.0"}`)); err == nil {
		t.Fatal("expected error for document without root")
	}
}

func TestNodeUnmarshal_SplitsEnvelopeHandlersAndConvenience(t *testing.T) {
	payload := `{
		"type": "button",
		"id": "save",
		"className": "primary",
		"variant": "outline",
		"props": {"size": "lg"},
		"onClick": {"handler": "click", "actions": [{"action": "console", "message": "hi"}]}
	}`
	var node Node
	if err := json.Unmarshal([]byte(payload), &node); err != nil {
		t.Fatalf("unmarshal node: %v", err)
	}

	if node.ID != "save" || node.ClassName != "primary" {
		t.Fatalf("envelope fields mismatch: %+v", node)
	}
	if diff := cmp.Diff(map[string]any{"size": "lg"}, node.Props); diff != "" {
		t.Fatalf("props mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"variant": "outline"}, node.Convenience); diff != "" {
		t.Fatalf("convenience mismatch (-want +got):\n%s", diff)
	}

	handler, ok := node.Handler("onClick")
	if !ok {
		t.Fatal("expected onClick handler")
	}
	if len(handler.Actions) != 1 || handler.Actions[0].Kind != "console" {
		t.Fatalf("handler actions mismatch: %+v", handler.Actions)
	}
	if diff := cmp.Diff(map[string]any{"message": "hi"}, handler.Actions[0].Params); diff != "" {
		t.Fatalf("action params mismatch (-want +got):\n%s", diff)
	}
}

func TestNodeUnmarshal_LowercaseOnFieldStaysConvenience(t *testing.T) {
	var node Node
	if err := json.Unmarshal([]byte(`{"type": "video", "once": true}`), &node); err != nil {
		t.Fatalf("unmarshal node: %v", err)
	}
	if len(node.Handlers) != 0 {
		t.Fatalf("unexpected handlers: %+v", node.Handlers)
	}
	if node.Convenience["once"] != true {
		t.Fatalf("convenience mismatch: %+v", node.Convenience)
	}
}

func TestChildrenUnmarshal_Variants(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		verify  func(t *testing.T, c Children)
	}{
		{
			name:    "string literal",
			payload: `"hello"`,
			verify: func(t *testing.T, c Children) {
				if c.Kind != ChildLiteral || c.Text != "hello" {
					t.Fatalf("literal mismatch: %+v", c)
				}
			},
		},
		{
			name:    "number literal keeps source form",
			payload: `42`,
			verify: func(t *testing.T, c Children) {
				if c.Kind != ChildLiteral || c.Text != "42" {
					t.Fatalf("number literal mismatch: %+v", c)
				}
			},
		},
		{
			name:    "single node",
			payload: `{"type": "text", "content": "Body"}`,
			verify: func(t *testing.T, c Children) {
				if c.Kind != ChildNode || c.Node == nil || c.Node.Type != "text" {
					t.Fatalf("node child mismatch: %+v", c)
				}
			},
		},
		{
			name:    "ordered list",
			payload: `[{"type": "a"}, "mid", {"type": "b"}]`,
			verify: func(t *testing.T, c Children) {
				if c.Kind != ChildList || len(c.List) != 3 {
					t.Fatalf("list mismatch: %+v", c)
				}
				if c.List[0].Kind != ChildNode || c.List[1].Kind != ChildLiteral || c.List[2].Kind != ChildNode {
					t.Fatalf("list element kinds mismatch: %+v", c.List)
				}
			},
		},
		{
			name:    "null renders nothing",
			payload: `null`,
			verify: func(t *testing.T, c Children) {
				if c.Kind != ChildList || len(c.List) != 0 {
					t.Fatalf("null children mismatch: %+v", c)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var child Children
			if err := json.Unmarshal([]byte(tc.payload), &child); err != nil {
				t.Fatalf("unmarshal children: %v", err)
			}
			tc.verify(t, child)
		})
	}
}

func TestRuleValueUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		verify  func(t *testing.T, r RuleValue)
	}{
		{
			name:    "boolean shorthand",
			payload: `true`,
			verify: func(t *testing.T, r RuleValue) {
				if !r.HasVal || !r.Bool || !r.Enabled() {
					t.Fatalf("boolean shorthand mismatch: %+v", r)
				}
			},
		},
		{
			name:    "boolean false disables",
			payload: `false`,
			verify: func(t *testing.T, r RuleValue) {
				if r.Enabled() {
					t.Fatalf("expected disabled rule: %+v", r)
				}
			},
		},
		{
			name:    "string shorthand is the message",
			payload: `"Name is required"`,
			verify: func(t *testing.T, r RuleValue) {
				if got := r.MessageOr("fallback"); got != "Name is required" {
					t.Fatalf("message mismatch: %q", got)
				}
			},
		},
		{
			name:    "numeric shorthand",
			payload: `3`,
			verify: func(t *testing.T, r RuleValue) {
				n, ok := r.NumberValue()
				if !ok || n != 3 {
					t.Fatalf("number mismatch: %v %v", n, ok)
				}
				if got := r.MessageOr("fallback"); got != "fallback" {
					t.Fatalf("numeric shorthand should not carry a message: %q", got)
				}
			},
		},
		{
			name:    "object with numeric value",
			payload: `{"value": 8, "message": "Too short"}`,
			verify: func(t *testing.T, r RuleValue) {
				n, ok := r.NumberValue()
				if !ok || n != 8 {
					t.Fatalf("number mismatch: %v %v", n, ok)
				}
				if got := r.MessageOr("fallback"); got != "Too short" {
					t.Fatalf("message mismatch: %q", got)
				}
			},
		},
		{
			name:    "object with boolean value",
			payload: `{"value": true, "message": "You must accept the terms"}`,
			verify: func(t *testing.T, r RuleValue) {
				if !r.HasVal || !r.Bool || !r.Enabled() {
					t.Fatalf("boolean object form mismatch: %+v", r)
				}
				if got := r.MessageOr("fallback"); got != "You must accept the terms" {
					t.Fatalf("message mismatch: %q", got)
				}
			},
		},
		{
			name:    "object with boolean false disables",
			payload: `{"value": false, "message": "unused"}`,
			verify: func(t *testing.T, r RuleValue) {
				if r.Enabled() {
					t.Fatalf("expected disabled rule: %+v", r)
				}
			},
		},
		{
			name:    "object with pattern value",
			payload: `{"value": "^[a-z]+$", "message": "Lowercase only"}`,
			verify: func(t *testing.T, r RuleValue) {
				if r.PatternSource() != "^[a-z]+$" {
					t.Fatalf("pattern source mismatch: %q", r.PatternSource())
				}
				if got := r.MessageOr("fallback"); got != "Lowercase only" {
					t.Fatalf("message mismatch: %q", got)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var rule RuleValue
			if err := json.Unmarshal([]byte(tc.payload), &rule); err != nil {
				t.Fatalf("unmarshal rule value: %v", err)
			}
			tc.verify(t, rule)
		})
	}
}

func TestValidationSpecUnmarshal(t *testing.T) {
	payload := `{
		"mode": "onChange",
		"fields": {
			"email": {
				"required": "Email is required",
				"pattern": {"value": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$", "message": "Please enter a valid email"}
			}
		}
	}`
	var validation ValidationSpec
	if err := json.Unmarshal([]byte(payload), &validation); err != nil {
		t.Fatalf("unmarshal validation: %v", err)
	}
	if validation.EffectiveMode() != ModeOnChange {
		t.Fatalf("mode mismatch: %q", validation.Mode)
	}
	rules, ok := validation.Fields["email"]
	if !ok || rules.Required == nil || rules.Pattern == nil {
		t.Fatalf("field rules mismatch: %+v", validation.Fields)
	}
	if rules.Empty() {
		t.Fatal("rules should not be empty")
	}
}

func TestValidationSpec_DefaultMode(t *testing.T) {
	var empty *ValidationSpec
	if empty.EffectiveMode() != ModeOnSubmit {
		t.Fatal("nil spec should default to onSubmit")
	}
}

func TestParseYAMLDocument(t *testing.T) {
	payload := []byte(`
type: card
children:
  - type: heading
    content: Title
  - type: text
    content: Body
`)
	doc, err := ParseYAMLDocument(payload)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if doc.Root.Type != "card" {
		t.Fatalf("root type mismatch: %q", doc.Root.Type)
	}
	if doc.Root.Children == nil || doc.Root.Children.Kind != ChildList || len(doc.Root.Children.List) != 2 {
		t.Fatalf("children mismatch: %+v", doc.Root.Children)
	}
}
