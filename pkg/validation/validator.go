// Package validation implements the declarative field validation engine: rule
// sets compiled once per form, evaluated in a fixed precedence order with
// first-failure-wins semantics per field.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

// emailPattern is the built-in email-shape check enabled by the `email` rule.
// The expression avoids catastrophic backtracking classes on purpose.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Result is the outcome of a full-form validation pass.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// RuleError reports a malformed rule definition (e.g. an invalid pattern).
// The affected field is treated as always-invalid with a diagnostic message
// instead of crashing the form.
type RuleError struct {
	Field string
	Rule  string
	Err   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("validation: field %q rule %q: %v", e.Field, e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Validator evaluates a form's field rule sets. Rules are compiled once at
// construction; patterns are not recompiled per keystroke.
type Validator struct {
	mode   spec.ValidationMode
	fields map[string]*fieldValidator
}

type fieldValidator struct {
	name string

	required    bool
	requiredMsg string

	email    bool
	emailMsg string

	minLength    *int
	minLengthMsg string
	maxLength    *int
	maxLengthMsg string

	min    *float64
	minMsg string
	max    *float64
	maxMsg string

	pattern    *regexp.Regexp
	patternMsg string

	// ruleErr marks the field always-invalid when a rule definition is
	// malformed. Its message doubles as the displayed diagnostic.
	ruleErr *RuleError
}

// New compiles a validator from the specification. A nil spec yields a
// validator that accepts everything.
func New(validation *spec.ValidationSpec) *Validator {
	v := &Validator{
		mode:   validation.EffectiveMode(),
		fields: make(map[string]*fieldValidator),
	}
	if validation == nil {
		return v
	}
	for name, rules := range validation.Fields {
		v.fields[name] = compileField(name, rules)
	}
	return v
}

func compileField(name string, rules spec.FieldRules) *fieldValidator {
	fv := &fieldValidator{name: name}

	if rules.Required.Enabled() {
		fv.required = true
		fv.requiredMsg = rules.Required.MessageOr(name + " is required")
	}
	if rules.Email.Enabled() {
		fv.email = true
		fv.emailMsg = rules.Email.MessageOr("Please enter a valid email address")
	}
	if n, ok := rules.MinLength.NumberValue(); ok {
		length := int(n)
		fv.minLength = &length
		fv.minLengthMsg = rules.MinLength.MessageOr(fmt.Sprintf("%s must be at least %d characters", name, length))
	}
	if n, ok := rules.MaxLength.NumberValue(); ok {
		length := int(n)
		fv.maxLength = &length
		fv.maxLengthMsg = rules.MaxLength.MessageOr(fmt.Sprintf("%s must be no more than %d characters", name, length))
	}
	if n, ok := rules.Min.NumberValue(); ok {
		bound := n
		fv.min = &bound
		fv.minMsg = rules.Min.MessageOr(fmt.Sprintf("%s must be at least %s", name, formatBound(bound)))
	}
	if n, ok := rules.Max.NumberValue(); ok {
		bound := n
		fv.max = &bound
		fv.maxMsg = rules.Max.MessageOr(fmt.Sprintf("%s must be no more than %s", name, formatBound(bound)))
	}
	if source := rules.Pattern.PatternSource(); source != "" {
		compiled, err := regexp.Compile(source)
		if err != nil {
			fv.ruleErr = &RuleError{Field: name, Rule: spec.RulePattern, Err: err}
		} else {
			fv.pattern = compiled
			fv.patternMsg = rules.Pattern.MessageOr(name + " format is invalid")
		}
	}

	return fv
}

// Mode reports when field-level validation re-evaluates.
func (v *Validator) Mode() spec.ValidationMode {
	return v.mode
}

// RuleErrors returns the malformed-rule diagnostics collected at compile time.
func (v *Validator) RuleErrors() []*RuleError {
	var errs []*RuleError
	for _, fv := range v.fields {
		if fv.ruleErr != nil {
			errs = append(errs, fv.ruleErr)
		}
	}
	return errs
}

// ValidateField evaluates one field against its rule set and returns the
// first failing rule's message. Fields without rules are always valid.
func (v *Validator) ValidateField(name string, value any) (string, bool) {
	fv, ok := v.fields[name]
	if !ok {
		return "", true
	}
	return fv.validate(value)
}

// ValidateForm evaluates every configured field against the supplied values.
func (v *Validator) ValidateForm(values map[string]any) Result {
	result := Result{Valid: true, Errors: make(map[string]string)}
	for name, fv := range v.fields {
		if message, ok := fv.validate(values[name]); !ok {
			result.Errors[name] = message
			result.Valid = false
		}
	}
	return result
}

// validate applies the precedence order: required, email, length bounds,
// numeric bounds, pattern. The first failure wins; a field never accumulates
// multiple simultaneous messages.
func (fv *fieldValidator) validate(value any) (string, bool) {
	if fv.ruleErr != nil {
		return fmt.Sprintf("%s has an invalid validation rule", fv.name), false
	}

	empty := isEmpty(value)
	if fv.required && empty {
		return fv.requiredMsg, false
	}
	if empty {
		// Optional fields skip the remaining rules when left blank.
		return "", true
	}

	text, isText := value.(string)

	if fv.email && isText && !emailPattern.MatchString(text) {
		return fv.emailMsg, false
	}

	if isText {
		// Length bounds count UTF-8 runes, not bytes.
		length := utf8.RuneCountInString(text)
		if fv.minLength != nil && length < *fv.minLength {
			return fv.minLengthMsg, false
		}
		if fv.maxLength != nil && length > *fv.maxLength {
			return fv.maxLengthMsg, false
		}
	}

	if number, ok := numericValue(value); ok {
		if fv.min != nil && number < *fv.min {
			return fv.minMsg, false
		}
		if fv.max != nil && number > *fv.max {
			return fv.maxMsg, false
		}
	}

	if fv.pattern != nil && isText && !fv.pattern.MatchString(text) {
		return fv.patternMsg, false
	}

	return "", true
}

// isEmpty mirrors the wire contract's emptiness test: nil, empty string,
// empty slice, and false (unchecked checkbox) all count as empty.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() == 0
	}
	return false
}

// numericValue coerces numbers and numeric strings for min/max bounds.
func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}
