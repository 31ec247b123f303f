package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a JSON specification. The payload may be a full
// envelope (`{"version": ..., "root": {...}, "state": {"initial": {...}}}`)
// or a bare component node; a top-level `type` key selects the latter.
func ParseDocument(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("spec: parse document: %w", err)
	}

	if _, ok := probe["type"]; ok {
		var root Node
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("spec: parse root node: %w", err)
		}
		return &Document{Root: &root}, nil
	}

	var envelope struct {
		Version string `json:"version"`
		Root    *Node  `json:"root"`
		State   struct {
			Initial map[string]any `json:"initial"`
		} `json:"state"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("spec: parse document: %w", err)
	}
	if envelope.Root == nil {
		return nil, fmt.Errorf("spec: document has no root node")
	}

	return &Document{
		Version: envelope.Version,
		Root:    envelope.Root,
		Initial: envelope.State.Initial,
	}, nil
}

// ParseYAMLDocument decodes a YAML specification by normalising it to JSON
// first, so both formats share one decoding path.
func ParseYAMLDocument(data []byte) (*Document, error) {
	var decoded any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("spec: parse yaml document: %w", err)
	}
	normalised, err := json.Marshal(normaliseYAML(decoded))
	if err != nil {
		return nil, fmt.Errorf("spec: normalise yaml document: %w", err)
	}
	return ParseDocument(normalised)
}

// normaliseYAML rewrites yaml.v3 output so json.Marshal accepts it. v3 only
// produces map[string]any for string-keyed maps, but nested documents sourced
// from older emitters can still surface map[any]any.
func normaliseYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normaliseYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normaliseYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normaliseYAML(item)
		}
		return out
	default:
		return v
	}
}

// UnmarshalJSON splits the node wire format into the envelope fields the
// engine knows about, `on<Event>` handler bindings, and remaining top-level
// convenience fields kept for the resolver's prop merge.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, payload := range raw {
		var err error
		switch key {
		case "type":
			err = json.Unmarshal(payload, &n.Type)
		case "id":
			err = json.Unmarshal(payload, &n.ID)
		case "className":
			err = json.Unmarshal(payload, &n.ClassName)
		case "testId":
			err = json.Unmarshal(payload, &n.TestID)
		case "props":
			err = json.Unmarshal(payload, &n.Props)
		case "children":
			child := &Children{}
			if err = json.Unmarshal(payload, child); err == nil {
				n.Children = child
			}
		case "content":
			text, ok := literalText(payload)
			if !ok {
				err = fmt.Errorf("content must be a string or number")
			}
			n.Content = text
		case "when":
			err = json.Unmarshal(payload, &n.When)
		case "style":
			err = json.Unmarshal(payload, &n.Style)
		case "data":
			err = json.Unmarshal(payload, &n.Data)
		case "a11y":
			err = json.Unmarshal(payload, &n.A11y)
		case "state":
			state := &NodeState{}
			if err = json.Unmarshal(payload, state); err == nil {
				n.State = state
			}
		case "validation":
			validation := &ValidationSpec{}
			if err = json.Unmarshal(payload, validation); err == nil {
				n.Validation = validation
			}
		default:
			if isHandlerKey(key) {
				var handler HandlerSpec
				if err = json.Unmarshal(payload, &handler); err == nil {
					if n.Handlers == nil {
						n.Handlers = make(map[string]HandlerSpec)
					}
					n.Handlers[key] = handler
				}
				break
			}
			var value any
			if err = json.Unmarshal(payload, &value); err == nil {
				if n.Convenience == nil {
					n.Convenience = make(map[string]any)
				}
				n.Convenience[key] = value
			}
		}
		if err != nil {
			return fmt.Errorf("spec: node field %q: %w", key, err)
		}
	}

	return nil
}

// isHandlerKey reports whether a top-level key is a declarative event binding
// (onSubmit, onClick, ...). The uppercase check keeps convenience fields that
// merely start with "on" (e.g. "once") out of the handler map.
func isHandlerKey(key string) bool {
	if len(key) < 3 || key[:2] != "on" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key[2:])
	return unicode.IsUpper(r)
}

// UnmarshalJSON dispatches on the JSON shape: scalars become literals, objects
// become nested nodes, arrays become ordered lists. An explicit null decodes
// to an empty list, which renders nothing.
func (c *Children) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("spec: empty children payload")
	}

	switch trimmed[0] {
	case '{':
		node := &Node{}
		if err := json.Unmarshal(trimmed, node); err != nil {
			return err
		}
		c.Kind = ChildNode
		c.Node = node
		return nil
	case '[':
		var list []Children
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		c.Kind = ChildList
		c.List = list
		return nil
	case 'n':
		c.Kind = ChildList
		c.List = nil
		return nil
	default:
		text, ok := literalText(trimmed)
		if !ok {
			return fmt.Errorf("spec: children must be a literal, node, or array")
		}
		c.Kind = ChildLiteral
		c.Text = text
		return nil
	}
}

// literalText decodes a scalar JSON payload to its textual form. Numbers keep
// their source representation (42 stays "42", not a float rendering).
func literalText(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", false
		}
		return text, true
	case 't':
		return "true", true
	case 'f':
		return "false", true
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return "", false
		}
		return number.String(), true
	}
}

// UnmarshalJSON accepts the shorthand scalar forms and the long
// `{"value": ..., "message": ...}` object form.
func (r *RuleValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("spec: empty rule value")
	}

	switch trimmed[0] {
	case 't', 'f':
		var flag bool
		if err := json.Unmarshal(trimmed, &flag); err != nil {
			return err
		}
		r.Bool = flag
		r.HasVal = true
		return nil
	case '"':
		return json.Unmarshal(trimmed, &r.Text)
	case '{':
		var object struct {
			Value   json.RawMessage `json:"value"`
			Message string          `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &object); err != nil {
			return err
		}
		r.Message = object.Message
		if len(object.Value) > 0 {
			value := bytes.TrimSpace(object.Value)
			switch {
			case len(value) == 0:
				return nil
			case value[0] == '"':
				return json.Unmarshal(value, &r.Text)
			case value[0] == 't' || value[0] == 'f':
				var flag bool
				if err := json.Unmarshal(value, &flag); err != nil {
					return err
				}
				r.Bool = flag
				r.HasVal = true
			default:
				var number float64
				if err := json.Unmarshal(value, &number); err != nil {
					return fmt.Errorf("spec: rule value must be a bool, string, or number: %w", err)
				}
				r.Number = number
				r.HasNumber = true
			}
		}
		return nil
	default:
		var number float64
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return fmt.Errorf("spec: unsupported rule value: %w", err)
		}
		r.Number = number
		r.HasNumber = true
		return nil
	}
}

// UnmarshalJSON pulls the action kind out of the `action` key and keeps the
// remaining keys as kind-specific parameters.
func (a *ActionSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if kind, ok := raw["action"].(string); ok {
		a.Kind = kind
	}
	delete(raw, "action")
	if len(raw) > 0 {
		a.Params = raw
	}
	return nil
}
