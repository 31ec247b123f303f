package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoForm is returned when the walked document contains no form node.
	ErrNoForm = errors.New("tui: document contains no form")
)
