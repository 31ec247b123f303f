package spec

// Package spec defines the specification tree consumed by the renderer: a
// JSON-serialisable description of a UI where every object carries a `type`
// key resolved against a component registry at render time. Field names of
// the wire format (`type`, `props`, `children`, `content`, `state`,
// `validation`, `onSubmit`, ...) are a stable external contract.

// Node is a single specification node: one UI element plus its nested content.
type Node struct {
	// Type keys into the component registry. Required, non-empty.
	Type string

	// ID is an optional stable identifier, forwarded as the HTML id attribute
	// and used to key children during rendering.
	ID string

	// Props carries arbitrary configuration for the resolved component.
	// Same-named keys here win over top-level convenience fields.
	Props map[string]any

	// Convenience holds top-level fields that are not part of the node
	// envelope. Authors may write `{"type": "heading", "level": 2}` instead of
	// nesting `level` under props; the resolver merges both sources.
	Convenience map[string]any

	// Children is the nested content: a literal, a single node, or an ordered
	// list. Nil when the node has no children.
	Children *Children

	// Content is an alternate textual payload. Numeric literals are carried in
	// their decimal form.
	Content string

	// When is an optional condition expression; a node whose condition
	// evaluates false against the current state is not rendered.
	When string

	// ClassName, Style, Data and TestID are presentation passthroughs
	// forwarded as HTML attributes by the component catalog.
	ClassName string
	Style     map[string]string
	Data      map[string]string
	TestID    string

	// A11y carries accessibility attributes (ariaLabel, role, ...), forwarded
	// verbatim by components that render a host element.
	A11y map[string]any

	// State seeds the form state container for stateful container nodes.
	State *NodeState

	// Validation configures the validation engine for form nodes.
	Validation *ValidationSpec

	// Handlers maps declarative event keys (onSubmit, onClick, ...) to their
	// parsed handler specifications.
	Handlers map[string]HandlerSpec
}

// Handler returns the handler bound to the given event key (e.g. "onSubmit")
// and whether one is present.
func (n *Node) Handler(event string) (HandlerSpec, bool) {
	h, ok := n.Handlers[event]
	return h, ok
}

// NodeState seeds a form state container from the specification.
type NodeState struct {
	FormData map[string]any    `json:"formData"`
	Errors   map[string]string `json:"errors"`
}

// ChildKind discriminates the Children variant.
type ChildKind int

const (
	// ChildLiteral is terminal text content; recursion stops here.
	ChildLiteral ChildKind = iota
	// ChildNode is a nested specification node.
	ChildNode
	// ChildList is an ordered sequence of independently resolved children.
	ChildList
)

// Children models the heterogeneous `children` field: a raw string or number
// is terminal content, an object with a `type` field is itself a spec node,
// and an array is rendered as an ordered sequence. The tagged variant lets the
// renderer switch exhaustively instead of type-asserting at each call site.
type Children struct {
	Kind ChildKind

	// Text holds the literal payload when Kind == ChildLiteral.
	Text string

	// Node holds the nested node when Kind == ChildNode.
	Node *Node

	// List holds the ordered children when Kind == ChildList.
	List []Children
}

// LiteralChild wraps terminal text content.
func LiteralChild(text string) *Children {
	return &Children{Kind: ChildLiteral, Text: text}
}

// NodeChild wraps a single nested node.
func NodeChild(node *Node) *Children {
	return &Children{Kind: ChildNode, Node: node}
}

// ListChild wraps an ordered sequence of children.
func ListChild(items ...Children) *Children {
	return &Children{Kind: ChildList, List: items}
}

// ValidationMode controls when field-level validation re-evaluates.
type ValidationMode string

const (
	// ModeOnSubmit validates every field at submit time. Default.
	ModeOnSubmit ValidationMode = "onSubmit"
	// ModeOnChange re-validates only the changed field on every change event.
	ModeOnChange ValidationMode = "onChange"
	// ModeOnBlur re-validates the field when it loses focus.
	ModeOnBlur ValidationMode = "onBlur"
)

// ValidationSpec configures the validation engine for one form.
type ValidationSpec struct {
	Mode   ValidationMode        `json:"mode"`
	Fields map[string]FieldRules `json:"fields"`
}

// EffectiveMode resolves the configured mode, defaulting to onSubmit.
func (v *ValidationSpec) EffectiveMode() ValidationMode {
	if v == nil || v.Mode == "" {
		return ModeOnSubmit
	}
	return v.Mode
}

// Canonical rule names, matching the wire format keys.
const (
	RuleRequired  = "required"
	RuleEmail     = "email"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleMin       = "min"
	RuleMax       = "max"
	RulePattern   = "pattern"
)

// FieldRules is the ordered rule set for one field. Evaluation short-circuits
// on the first failing rule: required, then email, then length bounds, then
// numeric bounds, then pattern. Length rules count UTF-8 runes.
type FieldRules struct {
	Required  *RuleValue `json:"required,omitempty"`
	Email     *RuleValue `json:"email,omitempty"`
	MinLength *RuleValue `json:"minLength,omitempty"`
	MaxLength *RuleValue `json:"maxLength,omitempty"`
	Min       *RuleValue `json:"min,omitempty"`
	Max       *RuleValue `json:"max,omitempty"`
	Pattern   *RuleValue `json:"pattern,omitempty"`
}

// Empty reports whether no rule is configured.
func (r FieldRules) Empty() bool {
	return r.Required == nil && r.Email == nil && r.MinLength == nil &&
		r.MaxLength == nil && r.Min == nil && r.Max == nil && r.Pattern == nil
}

// RuleValue is the polymorphic value of a single rule. The wire format accepts
// shorthand scalars (`"required": true`, `"required": "Name is required"`,
// `"minLength": 3`, `"pattern": "^a"`) as well as the long form
// `{"value": ..., "message": "..."}`.
type RuleValue struct {
	// Bool is set for boolean shorthand (required/email flags).
	Bool   bool
	HasVal bool

	// Number holds numeric shorthand or the object form's numeric value.
	Number    float64
	HasNumber bool

	// Text holds string shorthand: a message for required/email, a regular
	// expression source for pattern.
	Text string

	// Message is the explicit message from the object form.
	Message string
}

// Enabled reports whether the rule is switched on. Boolean false disables it;
// any other representation enables it.
func (r *RuleValue) Enabled() bool {
	if r == nil {
		return false
	}
	if r.HasVal {
		return r.Bool
	}
	return true
}

// MessageOr returns the configured message, falling back to the supplied
// default. String shorthand on flag rules is treated as the message.
func (r *RuleValue) MessageOr(fallback string) string {
	if r == nil {
		return fallback
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Text != "" && !r.HasNumber && !r.HasVal {
		return r.Text
	}
	return fallback
}

// NumberValue returns the numeric payload (shorthand or object form).
func (r *RuleValue) NumberValue() (float64, bool) {
	if r == nil || !r.HasNumber {
		return 0, false
	}
	return r.Number, true
}

// PatternSource returns the regular expression source for pattern rules:
// string shorthand, or the object form's value.
func (r *RuleValue) PatternSource() string {
	if r == nil {
		return ""
	}
	return r.Text
}

// HandlerSpec is a declarative event binding: a symbolic handler name plus an
// ordered action list executed when the bound event fires.
type HandlerSpec struct {
	Handler        string       `json:"handler"`
	PreventDefault bool         `json:"preventDefault"`
	Actions        []ActionSpec `json:"actions"`
}

// ActionSpec names an action kind plus kind-specific parameters.
type ActionSpec struct {
	// Kind is the registry key, e.g. "console".
	Kind string

	// Params carries the remaining keys of the action object (level, message,
	// url, ...).
	Params map[string]any
}

// Document is the top-level envelope an external producer supplies: either a
// full specification with a root node and optional initial state, or a bare
// component node (see ParseDocument).
type Document struct {
	Version string
	Root    *Node

	// Initial seeds renderer-level state (original wire shape:
	// `"state": {"initial": {...}}`).
	Initial map[string]any
}
