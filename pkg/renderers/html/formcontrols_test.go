package html

import (
	"strings"
	"testing"
)

func TestFormRendersWithMethodAndAction(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"id": "signup",
		"action": "/signup",
		"children": [{"type": "input", "name": "email"}]
	}`)
	for _, fragment := range []string{`<form`, `id="signup"`, `method="post"`, `action="/signup"`, `novalidate`, `name="email"`} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestInputShowsSeededValueAndError(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"id": "profile",
		"state": {
			"formData": {"email": "ada@example.com"},
			"errors": {"email": "Email is already taken"}
		},
		"children": [{"type": "input", "name": "email"}]
	}`)

	for _, fragment := range []string{
		`value="ada@example.com"`,
		`aria-invalid="true"`,
		`aria-describedby="email-error"`,
		`<p class="jedi-field-error" id="email-error">Email is already taken</p>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestInputShowsErrorWithoutValue(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"state": {"errors": {"city": "City is required"}},
		"children": [{"type": "input", "name": "city"}]
	}`)
	for _, fragment := range []string{
		`aria-invalid="true"`,
		`<p class="jedi-field-error" id="city-error">City is required</p>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestInputOutsideFormHasNoStateWiring(t *testing.T) {
	got := renderNode(t, `{"type": "input", "name": "q", "placeholder": "Search"}`)
	if strings.Contains(got, "aria-invalid") || strings.Contains(got, "value=") {
		t.Errorf("standalone input should carry no form state: %s", got)
	}
	if !strings.Contains(got, `placeholder="Search"`) {
		t.Errorf("placeholder missing: %s", got)
	}
}

func TestTextareaBodyIsEscapedValue(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"state": {"formData": {"bio": "<i>hacker</i>"}},
		"children": [{"type": "textarea", "name": "bio", "rows": 4}]
	}`)
	if !strings.Contains(got, `rows="4"`) {
		t.Errorf("rows missing: %s", got)
	}
	if strings.Contains(got, "<i>hacker</i>") {
		t.Errorf("textarea value not escaped: %s", got)
	}
	if !strings.Contains(got, "&lt;i&gt;hacker&lt;/i&gt;") {
		t.Errorf("escaped value missing: %s", got)
	}
}

func TestCheckboxChecked(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"state": {"formData": {"terms": true}},
		"children": [{"type": "checkbox", "name": "terms"}]
	}`)
	if !strings.Contains(got, `type="checkbox"`) || !strings.Contains(got, "checked") {
		t.Errorf("checkbox state missing: %s", got)
	}

	unchecked := renderNode(t, `{
		"type": "form",
		"state": {"formData": {"terms": false}},
		"children": [{"type": "checkbox", "name": "terms"}]
	}`)
	if strings.Contains(unchecked, "checked") {
		t.Errorf("unchecked checkbox rendered checked: %s", unchecked)
	}
}

func TestSelectOptions(t *testing.T) {
	got := renderNode(t, `{
		"type": "form",
		"state": {"formData": {"country": "nz"}},
		"children": [{
			"type": "select",
			"name": "country",
			"placeholder": "Pick one",
			"options": [
				{"value": "au", "label": "Australia"},
				{"value": "nz", "label": "New Zealand"}
			]
		}]
	}`)

	for _, fragment := range []string{
		`<select`,
		`<option value="" disabled>Pick one</option>`,
		`<option value="au">Australia</option>`,
		`<option value="nz" selected>New Zealand</option>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, got)
		}
	}
}

func TestSelectStringOptions(t *testing.T) {
	got := renderNode(t, `{"type": "select", "name": "size", "options": ["S", "M"]}`)
	if !strings.Contains(got, `<option value="S">S</option>`) || !strings.Contains(got, `<option value="M">M</option>`) {
		t.Errorf("string options missing: %s", got)
	}
}

func TestLabelFor(t *testing.T) {
	got := renderNode(t, `{"type": "label", "htmlFor": "email", "children": "Email address"}`)
	if !strings.Contains(got, `for="email"`) || !strings.Contains(got, ">Email address</label>") {
		t.Errorf("label output: %s", got)
	}
}
