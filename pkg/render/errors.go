package render

import (
	"errors"
	"fmt"
)

// UnknownTypeError reports a specification node whose type is not in the
// component registry. It is non-fatal to the tree: the affected subtree
// renders a diagnostic placeholder (or is omitted), siblings render normally.
type UnknownTypeError struct {
	// TypeName is the offending registry key.
	TypeName string
	// Path locates the node in the specification tree, e.g.
	// "root.children[2]".
	Path string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("render: unknown component type %q at %s", e.TypeName, e.Path)
}

// MalformedNodeError reports a node that is neither a literal, an array, nor
// an object with a type. A common authoring mistake in hand-written JSON, so
// it surfaces visibly instead of being swallowed.
type MalformedNodeError struct {
	Path   string
	Reason string
}

func (e *MalformedNodeError) Error() string {
	return fmt.Sprintf("render: malformed node at %s: %s", e.Path, e.Reason)
}

// DuplicateRegistrationError reports a second registration for a component
// type name. Registration collisions indicate an integration bug in the host
// application, so Register raises it instead of silently overwriting.
type DuplicateRegistrationError struct {
	TypeName string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("render: component type %q already registered", e.TypeName)
}

// IsUnknownType reports whether err is an UnknownTypeError.
func IsUnknownType(err error) bool {
	var target *UnknownTypeError
	return errors.As(err, &target)
}

// IsMalformedNode reports whether err is a MalformedNodeError.
func IsMalformedNode(err error) bool {
	var target *MalformedNodeError
	return errors.As(err, &target)
}
