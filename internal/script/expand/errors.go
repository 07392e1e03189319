package expand

import (
	"errors"
	"fmt"
	"strings"
)

// Invocation argument errors.
var (
	// ErrUnterminatedString indicates a quoted argument value with no
	// closing quote.
	ErrUnterminatedString = errors.New("expand: unterminated string literal")

	// ErrPositionalAfterKeyword indicates a positional argument appearing
	// after a keyword argument.
	ErrPositionalAfterKeyword = errors.New("expand: positional argument after keyword argument")

	// ErrEmptyArgument indicates an empty argument item (two adjacent
	// commas or a trailing comma).
	ErrEmptyArgument = errors.New("expand: empty argument")
)

// RecursionLimitError reports that macro expansion exceeded the
// configured depth limit. With no limit configured, a self-referential
// macro diverges instead; the limit exists so runaway scripts fail with
// the invocation chain rather than exhausting the stack.
type RecursionLimitError struct {
	Limit int
	Stack []string
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("macro expansion exceeded depth %d: %s",
		e.Limit, strings.Join(e.Stack, " > "))
}

// Error decorates an expansion failure with the invoking line and the
// macro invocation chain that led to it. Errors frequently originate
// deep inside nested expansions, so the chain is part of every report.
type Error struct {
	// Line is the line number of the invocation within its unit.
	Line int
	// Macro is the macro being invoked when the failure occurred.
	Macro string
	// Stack is the chain of macro names outside this invocation,
	// outermost first.
	Stack []string
	Err   error
}

func (e *Error) Error() string {
	chain := e.Macro
	if len(e.Stack) > 0 {
		chain = strings.Join(e.Stack, " > ") + " > " + e.Macro
	}
	return fmt.Sprintf("expanding %s at line %d: %v", chain, e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
