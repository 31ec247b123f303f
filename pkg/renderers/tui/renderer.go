package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/alexberriman/react-jedi-sub020/pkg/actions"
	"github.com/alexberriman/react-jedi-sub020/pkg/form"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

const maxSubmitAttempts = 3

// Renderer drives a specification document through terminal prompts. Static
// nodes print in document order; each form node becomes a prompt sequence
// backed by its own state container, validated with the same engine the HTML
// renderer uses, and submitted through the action dispatcher.
type Renderer struct {
	driver            PromptDriver
	dispatcher        *actions.Dispatcher
	outputFormat      OutputFormat
	out               io.Writer
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a renderer with the survey-backed driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		out:          os.Stdout,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run walks the document, fills in every form it contains, and serializes the
// merged submitted values. The document's initial state seeds the first
// matching fields.
func (r *Renderer) Run(ctx context.Context, doc *spec.Document) (map[string]any, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("tui: document has no root node")
	}
	return r.run(ctx, doc.Root, doc.Initial)
}

// RunNode walks a bare component node.
func (r *Renderer) RunNode(ctx context.Context, node *spec.Node) (map[string]any, error) {
	return r.run(ctx, node, nil)
}

func (r *Renderer) run(ctx context.Context, root *spec.Node, initial map[string]any) (map[string]any, error) {
	collected := make(map[string]any)
	forms := 0

	if err := r.walk(ctx, root, initial, collected, &forms); err != nil {
		return nil, err
	}
	if forms == 0 {
		return nil, ErrNoForm
	}

	values := collected
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: transform values: %w", err)
		}
		values = transformed
	}
	if err := r.serialize(values); err != nil {
		return nil, err
	}
	return values, nil
}

// walk prints static nodes and hands form subtrees to runForm.
func (r *Renderer) walk(ctx context.Context, node *spec.Node, initial map[string]any, collected map[string]any, forms *int) error {
	if node == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if isFormNode(node) {
		*forms++
		values, err := r.runForm(ctx, node, initial)
		if err != nil {
			return err
		}
		for field, value := range values {
			collected[field] = value
		}
		return nil
	}

	if text := staticText(node); text != "" {
		if err := r.printStatic(ctx, node.Type, text); err != nil {
			return err
		}
	}

	return r.walkChildren(ctx, node.Children, func(child *spec.Node) error {
		return r.walk(ctx, child, initial, collected, forms)
	})
}

func (r *Renderer) walkChildren(ctx context.Context, children *spec.Children, visit func(*spec.Node) error) error {
	if children == nil {
		return nil
	}
	switch children.Kind {
	case spec.ChildNode:
		return visit(children.Node)
	case spec.ChildList:
		for i := range children.List {
			child := &children.List[i]
			switch child.Kind {
			case spec.ChildNode:
				if err := visit(child.Node); err != nil {
					return err
				}
			case spec.ChildList:
				if err := r.walkChildren(ctx, child, visit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// runForm prompts every field in the subtree in document order, then submits.
// Failed validation prints the error map and re-prompts the offending fields.
func (r *Renderer) runForm(ctx context.Context, node *spec.Node, initial map[string]any) (map[string]any, error) {
	controller := form.NewController(node, r.dispatcher)
	controller.State().MergeSeed(initial, nil)

	fields, err := r.collectFields(ctx, node, controller)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		if err := r.promptField(ctx, controller, field); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		result, err := controller.Submit(ctx)
		if err != nil {
			return nil, fmt.Errorf("tui: submit: %w", err)
		}
		if result.Valid {
			return controller.State().Values(), nil
		}
		if attempt >= maxSubmitAttempts {
			return nil, fmt.Errorf("tui: form still invalid after %d attempts", attempt)
		}

		r.printErrors(ctx, result.Errors)
		for _, field := range fields {
			if _, failed := result.Errors[fieldName(field)]; failed {
				if err := r.promptField(ctx, controller, field); err != nil {
					return nil, err
				}
			}
		}
	}
}

// collectFields walks the form subtree, printing static nodes as they are
// passed and returning the field nodes in document order.
func (r *Renderer) collectFields(ctx context.Context, node *spec.Node, controller *form.Controller) ([]*spec.Node, error) {
	var fields []*spec.Node
	var visit func(*spec.Node) error
	visit = func(current *spec.Node) error {
		if current == nil {
			return nil
		}
		switch current.Type {
		case "input", "textarea", "checkbox", "select":
			fields = append(fields, current)
			return nil
		}
		if text := staticText(current); text != "" {
			if err := r.printStatic(ctx, current.Type, text); err != nil {
				return err
			}
		}
		return r.walkChildren(ctx, current.Children, visit)
	}
	if err := r.walkChildren(ctx, node.Children, visit); err != nil {
		return nil, err
	}
	return fields, nil
}

// promptField asks for one field's value with the right prompt shape and
// records it on the controller.
func (r *Renderer) promptField(ctx context.Context, controller *form.Controller, field *spec.Node) error {
	name := fieldName(field)
	if name == "" {
		return nil
	}
	label := fieldProp(field, "label")
	if label == "" {
		label = name
	}
	help := fieldProp(field, "placeholder")

	validator := func(input string) error {
		if message, ok := controller.Validator().ValidateField(name, input); !ok {
			return errors.New(message)
		}
		return nil
	}

	current := controller.State().Value(name)

	switch field.Type {
	case "checkbox":
		checked, _ := current.(bool)
		value, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: checked, Help: help})
		if err != nil {
			return err
		}
		controller.SetValue(name, value)
		return nil

	case "select":
		options := selectOptions(field)
		defaultIndex := -1
		if current != nil {
			defaultIndex = indexOf(optionValues(options), fmt.Sprint(current))
		}
		index, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      optionLabels(options),
			DefaultIndex: defaultIndex,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if index >= 0 && index < len(options) {
			controller.SetValue(name, options[index].value)
		}
		return nil

	case "textarea":
		value, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: stringOrEmpty(current), Help: help})
		if err != nil {
			return err
		}
		controller.SetValue(name, value)
		return nil

	default:
		cfg := InputConfig{Message: label, Default: stringOrEmpty(current), Help: help, Validator: validator}
		if fieldProp(field, "inputType") == "password" {
			value, err := r.driver.Password(ctx, cfg)
			if err != nil {
				return err
			}
			controller.SetValue(name, value)
			return nil
		}
		value, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		controller.SetValue(name, value)
		return nil
	}
}

func (r *Renderer) printStatic(ctx context.Context, nodeType, text string) error {
	prefix := r.theme.InfoPrefix
	if nodeType == "heading" {
		prefix = r.theme.HeadingPrefix
	}
	return r.driver.Info(ctx, prefix+text)
}

func (r *Renderer) printErrors(ctx context.Context, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		// Info failures here are not fatal; the re-prompt carries the message.
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+errs[field])
	}
}

func (r *Renderer) serialize(values map[string]any) error {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for field, value := range values {
			encoded.Set(field, fmt.Sprint(value))
		}
		_, err := fmt.Fprintln(r.out, encoded.Encode())
		return err
	case OutputFormatPrettyText:
		fields := make([]string, 0, len(values))
		for field := range values {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			if _, err := fmt.Fprintf(r.out, "%s: %v\n", field, values[field]); err != nil {
				return err
			}
		}
		return nil
	default:
		payload, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("tui: marshal values: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(payload))
		return err
	}
}

func isFormNode(node *spec.Node) bool {
	if node.State != nil || node.Validation != nil {
		return true
	}
	_, ok := node.Handler("onSubmit")
	return ok
}

// staticText extracts printable text from a presentational node.
func staticText(node *spec.Node) string {
	if node.Content != "" {
		return node.Content
	}
	if node.Children != nil && node.Children.Kind == spec.ChildLiteral {
		return strings.TrimSpace(node.Children.Text)
	}
	return ""
}

func fieldName(field *spec.Node) string {
	return fieldProp(field, "name")
}

// fieldProp reads a string prop with explicit props winning over top-level
// convenience fields.
func fieldProp(field *spec.Node, key string) string {
	if value, ok := field.Props[key].(string); ok {
		return value
	}
	value, _ := field.Convenience[key].(string)
	return value
}

type fieldOption struct {
	value string
	label string
}

func selectOptions(field *spec.Node) []fieldOption {
	raw, ok := field.Props["options"]
	if !ok {
		raw = field.Convenience["options"]
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	options := make([]fieldOption, 0, len(list))
	for _, item := range list {
		switch opt := item.(type) {
		case string:
			options = append(options, fieldOption{value: opt, label: opt})
		case map[string]any:
			value, _ := opt["value"].(string)
			label, _ := opt["label"].(string)
			if label == "" {
				label = value
			}
			options = append(options, fieldOption{value: value, label: label})
		}
	}
	return options
}

func optionValues(options []fieldOption) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.value
	}
	return out
}

func optionLabels(options []fieldOption) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.label
	}
	return out
}

func stringOrEmpty(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
