package template

import (
	"errors"
	"fmt"
)

// Substitution errors.
var (
	// ErrUnterminatedField indicates an opening brace with no matching
	// closing brace.
	ErrUnterminatedField = errors.New("template: unterminated field")

	// ErrStrayBrace indicates a single closing brace outside any field.
	// Literal braces must be doubled.
	ErrStrayBrace = errors.New("template: single '}' outside field")

	// ErrBadFormatSpec indicates a format specifier that is neither a
	// count literal nor a field reference to a numeric binding.
	ErrBadFormatSpec = errors.New("template: bad format specifier")
)

// UnboundFieldError reports a field placeholder with no matching binding.
// Macro is filled in by the expander, which knows which macro body is
// being substituted.
type UnboundFieldError struct {
	Field string
	Macro string
}

func (e *UnboundFieldError) Error() string {
	if e.Macro != "" {
		return fmt.Sprintf("unbound field %q in macro %q", e.Field, e.Macro)
	}
	return fmt.Sprintf("unbound field %q", e.Field)
}

// SubstituteError reports a malformed template line, carrying the 1-based
// line number within the substituted unit.
type SubstituteError struct {
	Line int
	Err  error
}

func (e *SubstituteError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SubstituteError) Unwrap() error {
	return e.Err
}
