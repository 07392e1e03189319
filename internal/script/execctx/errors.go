package execctx

import (
	"errors"
	"fmt"
)

// Execution context errors.
var (
	// ErrUnexpectedDirective indicates a structural directive reached the
	// execution context; the expander is expected to consume those.
	ErrUnexpectedDirective = errors.New("execctx: unexpected structural directive")
)

// DriverError reports a failed call to the editor driver collaborator.
// Driver failures are fatal for the run and are never retried.
type DriverError struct {
	// Op is the driver operation that failed (keys, command, buffer, clear).
	Op string
	// Line is the script line whose directive triggered the call.
	Line int
	Err  error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("driver %s failed at line %d: %v", e.Op, e.Line, e.Err)
}

func (e *DriverError) Unwrap() error {
	return e.Err
}
