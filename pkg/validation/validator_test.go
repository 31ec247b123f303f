package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

func mustSpec(t *testing.T, payload string) *spec.ValidationSpec {
	t.Helper()
	var vs spec.ValidationSpec
	if err := json.Unmarshal([]byte(payload), &vs); err != nil {
		t.Fatalf("unmarshal validation spec: %v", err)
	}
	return &vs
}

func TestValidateField_RequiredWinsOverPattern(t *testing.T) {
	v := New(mustSpec(t, `{
		"fields": {
			"email": {
				"required": "Email is required",
				"pattern": {"value": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$", "message": "Please enter a valid email"}
			}
		}
	}`))

	message, ok := v.ValidateField("email", "")
	if ok {
		t.Fatal("empty value should fail")
	}
	if message != "Email is required" {
		t.Fatalf("required must win over pattern, got %q", message)
	}
}

func TestValidateField_EmailScenario(t *testing.T) {
	v := New(mustSpec(t, `{
		"fields": {
			"email": {
				"required": "Email is required",
				"pattern": {"value": "^[^\\s@]+@[^\\s@]+\\.[^\\s@]+$", "message": "Please enter a valid email"}
			}
		}
	}`))

	if message, ok := v.ValidateField("email", "not-an-email"); ok || message != "Please enter a valid email" {
		t.Fatalf("invalid email mismatch: %q %v", message, ok)
	}
	if message, ok := v.ValidateField("email", "a@b.com"); !ok || message != "" {
		t.Fatalf("valid email mismatch: %q %v", message, ok)
	}
}

func TestValidateField_Precedence(t *testing.T) {
	v := New(mustSpec(t, `{
		"fields": {
			"handle": {
				"required": true,
				"minLength": {"value": 3, "message": "Too short"},
				"maxLength": {"value": 8, "message": "Too long"},
				"pattern": {"value": "^[a-z]+$", "message": "Lowercase only"}
			}
		}
	}`))

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"empty fails required with default message", "", "handle is required"},
		{"short fails length before pattern", "A", "Too short"},
		{"long fails length", "abcdefghij", "Too long"},
		{"wrong shape fails pattern last", "ABCDE", "Lowercase only"},
		{"valid passes", "abcde", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			message, ok := v.ValidateField("handle", tc.value)
			if tc.want == "" {
				if !ok {
					t.Fatalf("expected valid, got %q", message)
				}
				return
			}
			if ok || message != tc.want {
				t.Fatalf("message mismatch: got %q want %q", message, tc.want)
			}
		})
	}
}

func TestValidateField_RuneLength(t *testing.T) {
	v := New(mustSpec(t, `{"fields": {"name": {"minLength": 3}}}`))

	// Three runes, more than three bytes.
	if message, ok := v.ValidateField("name", "äöü"); !ok {
		t.Fatalf("rune-counted length should pass: %q", message)
	}
}

func TestValidateField_NumericBounds(t *testing.T) {
	v := New(mustSpec(t, `{
		"fields": {
			"age": {"min": {"value": 18, "message": "Adults only"}, "max": 120}
		}
	}`))

	if message, ok := v.ValidateField("age", 17); ok || message != "Adults only" {
		t.Fatalf("min bound mismatch: %q %v", message, ok)
	}
	if _, ok := v.ValidateField("age", "42"); !ok {
		t.Fatal("numeric string should satisfy bounds")
	}
	if message, ok := v.ValidateField("age", 121); ok || message != "age must be no more than 120" {
		t.Fatalf("max bound mismatch: %q %v", message, ok)
	}
	if _, ok := v.ValidateField("age", 18); !ok {
		t.Fatal("bounds are inclusive")
	}
}

func TestValidateField_CheckboxRequired(t *testing.T) {
	v := New(mustSpec(t, `{"fields": {"terms": {"required": "You must accept"}}}`))

	if message, ok := v.ValidateField("terms", false); ok || message != "You must accept" {
		t.Fatalf("unchecked checkbox mismatch: %q %v", message, ok)
	}
	if _, ok := v.ValidateField("terms", true); !ok {
		t.Fatal("checked checkbox should pass")
	}
}

func TestValidateField_OptionalBlankSkipsRules(t *testing.T) {
	v := New(mustSpec(t, `{"fields": {"nickname": {"minLength": 3}}}`))

	if _, ok := v.ValidateField("nickname", ""); !ok {
		t.Fatal("blank optional field should be valid")
	}
}

func TestValidateField_UnknownFieldAlwaysValid(t *testing.T) {
	v := New(mustSpec(t, `{"fields": {"email": {"required": true}}}`))

	if _, ok := v.ValidateField("city", ""); !ok {
		t.Fatal("field absent from rules must be valid")
	}
}

func TestValidateField_MalformedPattern(t *testing.T) {
	v := New(mustSpec(t, `{"fields": {"code": {"pattern": "("}}}`))

	errs := v.RuleErrors()
	if len(errs) != 1 || errs[0].Field != "code" || errs[0].Rule != spec.RulePattern {
		t.Fatalf("rule errors mismatch: %+v", errs)
	}

	message, ok := v.ValidateField("code", "anything")
	if ok {
		t.Fatal("field with a malformed rule must be always-invalid")
	}
	if !strings.Contains(message, "invalid validation rule") {
		t.Fatalf("diagnostic message mismatch: %q", message)
	}
}

func TestValidateForm(t *testing.T) {
	v := New(mustSpec(t, `{
		"fields": {
			"name": {"required": "Name is required"},
			"email": {"required": "Email is required", "email": true}
		}
	}`))

	result := v.ValidateForm(map[string]any{"name": "Ada", "email": "nope"})
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	want := map[string]string{"email": "Please enter a valid email address"}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	result = v.ValidateForm(map[string]any{"name": "Ada", "email": "ada@lovelace.dev"})
	if !result.Valid || len(result.Errors) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestNew_NilSpec(t *testing.T) {
	v := New(nil)
	if v.Mode() != spec.ModeOnSubmit {
		t.Fatalf("mode mismatch: %q", v.Mode())
	}
	if result := v.ValidateForm(map[string]any{"anything": ""}); !result.Valid {
		t.Fatalf("nil spec must accept everything: %+v", result)
	}
}
