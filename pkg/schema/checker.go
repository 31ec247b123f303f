// Package schema validates raw specification documents before they are parsed
// and rendered. It reports every structural problem it can find with a
// path/message pair, so authoring tools can surface all mistakes in one pass
// instead of failing on the first.
package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one structural problem found in a document.
type Issue struct {
	// Path locates the offending value, e.g. "root.children[2].type".
	Path string
	// Message describes the problem.
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result is the outcome of checking a document.
type Result struct {
	Valid  bool
	Issues []Issue
}

// Checker validates specification documents against the component-node shape.
// A Checker is immutable after construction and safe for concurrent use.
type Checker struct {
	node *openapi3.Schema
}

// NewChecker builds the node schema once. The schema is self-referential:
// children may nest nodes to arbitrary depth.
func NewChecker() *Checker {
	return &Checker{node: nodeSchema()}
}

// nodeSchema constructs the schema for a single component node. The children
// slot accepts a literal, a nested node, or a heterogeneous array of either.
func nodeSchema() *openapi3.Schema {
	node := openapi3.NewObjectSchema()
	nodeRef := openapi3.NewSchemaRef("", node)

	literal := &openapi3.Schema{
		OneOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
			openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}),
			openapi3.NewSchemaRef("", openapi3.NewBoolSchema()),
		},
	}
	childItem := &openapi3.Schema{
		OneOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", literal),
			nodeRef,
		},
	}
	children := &openapi3.Schema{
		OneOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", literal),
			nodeRef,
			openapi3.NewSchemaRef("", openapi3.NewArraySchema().WithItems(childItem)),
		},
	}

	stringMap := openapi3.NewObjectSchema().
		WithAdditionalProperties(openapi3.NewStringSchema())
	// a11y values may be numeric (tabIndex) or boolean (ariaHidden), not
	// just strings.
	scalarMap := openapi3.NewObjectSchema().
		WithAdditionalProperties(literal)

	node.Required = []string{"type"}
	node.Properties = openapi3.Schemas{
		"type":       openapi3.NewSchemaRef("", openapi3.NewStringSchema().WithMinLength(1)),
		"id":         openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"props":      openapi3.NewSchemaRef("", openapi3.NewObjectSchema()),
		"children":   openapi3.NewSchemaRef("", children),
		"content":    openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"when":       openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"className":  openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"style":      openapi3.NewSchemaRef("", stringMap),
		"data":       openapi3.NewSchemaRef("", stringMap),
		"testId":     openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
		"a11y":       openapi3.NewSchemaRef("", scalarMap),
		"state":      openapi3.NewSchemaRef("", stateSchema()),
		"validation": openapi3.NewSchemaRef("", validationSchema()),
	}
	return node
}

func stateSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("formData", openapi3.NewObjectSchema()).
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
}

func validationSchema() *openapi3.Schema {
	ruleValue := &openapi3.Schema{
		OneOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", openapi3.NewBoolSchema()),
			openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}),
			openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
			openapi3.NewSchemaRef("", openapi3.NewObjectSchema().
				WithProperty("value", &openapi3.Schema{}).
				WithProperty("message", openapi3.NewStringSchema())),
		},
	}

	field := openapi3.NewObjectSchema()
	for _, rule := range []string{"required", "email", "minLength", "maxLength", "min", "max", "pattern"} {
		field.Properties[rule] = openapi3.NewSchemaRef("", ruleValue)
	}

	mode := openapi3.NewStringSchema().WithEnum("onSubmit", "onChange", "onBlur")
	return openapi3.NewObjectSchema().
		WithProperty("mode", mode).
		WithProperty("fields", openapi3.NewObjectSchema().WithAdditionalProperties(field))
}

// Check validates a raw JSON document. Both envelope documents (with a
// top-level "root") and bare component nodes are accepted. Every issue found
// is reported; an empty issue list means the document is structurally sound.
func (c *Checker) Check(ctx context.Context, raw []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(raw) == 0 {
		return Result{}, errors.New("schema: document is empty")
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Result{}, fmt.Errorf("schema: parse document: %w", err)
	}

	envelope, isObject := value.(map[string]any)
	if !isObject {
		return Result{Issues: []Issue{{Path: "root", Message: "document must be a JSON object"}}}, nil
	}

	var issues []Issue
	if root, ok := envelope["root"]; ok {
		issues = append(issues, c.checkEnvelope(envelope)...)
		issues = append(issues, c.checkNode(ctx, root, "root")...)
	} else {
		issues = append(issues, c.checkNode(ctx, value, "root")...)
	}

	return Result{Valid: len(issues) == 0, Issues: issues}, nil
}

// checkEnvelope validates the document-level keys around the root node.
func (c *Checker) checkEnvelope(envelope map[string]any) []Issue {
	var issues []Issue
	if version, ok := envelope["version"]; ok {
		if _, isString := version.(string); !isString {
			issues = append(issues, Issue{Path: "version", Message: "must be a string"})
		}
	}
	if state, ok := envelope["state"]; ok {
		block, isObject := state.(map[string]any)
		if !isObject {
			issues = append(issues, Issue{Path: "state", Message: "must be an object"})
		} else if initial, ok := block["initial"]; ok {
			if _, isObject := initial.(map[string]any); !isObject {
				issues = append(issues, Issue{Path: "state.initial", Message: "must be an object"})
			}
		}
	}
	return issues
}

// checkNode validates one node against the node schema, then walks its
// children explicitly so nested issues carry spec-style paths instead of
// JSON pointers.
func (c *Checker) checkNode(ctx context.Context, value any, path string) []Issue {
	node, isObject := value.(map[string]any)
	if !isObject {
		return []Issue{{Path: path, Message: "node must be a JSON object"}}
	}

	var issues []Issue
	shallow := shallowNode(node)
	err := c.node.VisitJSON(shallow, openapi3.MultiErrors())
	issues = append(issues, translateSchemaErrors(err, path)...)

	if children, ok := node["children"]; ok {
		issues = append(issues, c.checkChildren(ctx, children, path)...)
	}
	return issues
}

func (c *Checker) checkChildren(ctx context.Context, children any, path string) []Issue {
	switch child := children.(type) {
	case map[string]any:
		return c.checkNode(ctx, child, path+".children")
	case []any:
		var issues []Issue
		for i, item := range child {
			itemPath := fmt.Sprintf("%s.children[%d]", path, i)
			switch nested := item.(type) {
			case map[string]any:
				issues = append(issues, c.checkNode(ctx, nested, itemPath)...)
			case string, float64, bool, json.Number:
				// literal child, nothing to walk
			default:
				issues = append(issues, Issue{Path: itemPath, Message: "child must be a node object or a literal"})
			}
		}
		return issues
	case string, float64, bool, json.Number:
		return nil
	default:
		return []Issue{{Path: path + ".children", Message: "children must be a literal, a node, or an array"}}
	}
}

// shallowNode strips the children slot so the recursive part is walked by
// checkChildren rather than re-validated through the self-referential schema.
func shallowNode(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for key, value := range node {
		if key == "children" {
			continue
		}
		out[key] = value
	}
	return out
}

// translateSchemaErrors flattens kin-openapi's error tree into issues rooted
// at the node's path.
func translateSchemaErrors(err error, path string) []Issue {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var issues []Issue
		for _, nested := range multi {
			issues = append(issues, translateSchemaErrors(nested, path)...)
		}
		return issues
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []Issue{{
			Path:    joinPointer(path, schemaErr.JSONPointer()),
			Message: schemaErr.Reason,
		}}
	}
	return []Issue{{Path: path, Message: err.Error()}}
}

func joinPointer(path string, pointer []string) string {
	if len(pointer) == 0 {
		return path
	}
	return path + "." + strings.Join(pointer, ".")
}
