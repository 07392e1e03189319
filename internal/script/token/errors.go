package token

import (
	"errors"
	"fmt"
)

// Tokenizer errors.
var (
	// ErrMalformedDirective indicates a structural directive that could
	// not be parsed (missing parentheses, unknown keyword).
	ErrMalformedDirective = errors.New("token: malformed directive")

	// ErrUnexpectedClose indicates "@endmacro" with no open definition.
	ErrUnexpectedClose = errors.New("token: @endmacro without @macro")

	// ErrUnterminatedDefinition indicates end of input with a macro
	// definition still open.
	ErrUnterminatedDefinition = errors.New("token: macro definition not closed")
)

// ParseError reports a malformed or unbalanced structural directive,
// carrying the offending 1-based line number.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseErrorf builds a ParseError wrapping sentinel err with detail.
func parseErrorf(line int, err error, format string, args ...any) *ParseError {
	return &ParseError{
		Line: line,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}
