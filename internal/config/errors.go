package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue indicates a setting holds a value of the wrong type or range.
var ErrInvalidValue = errors.New("invalid config value")

// ValueError reports a rejected setting.
type ValueError struct {
	// Path is the dotted setting path, e.g. "editor.tabWidth".
	Path string
	// Value is the rejected value.
	Value any
	// Reason describes what was expected.
	Reason string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("config %s = %v: %s", e.Path, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidValue).
func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}
